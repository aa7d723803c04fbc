package dto

// ===================== Request DTOs =====================

type CreateSiteRequest struct {
	Name               string   `json:"name" validate:"required"`
	Address            string   `json:"address" validate:"required"`
	PostalCode         string   `json:"postalCode" validate:"required"`
	Lat                *float64 `json:"lat"`
	Lng                *float64 `json:"lng"`
	HoursToday         *string  `json:"hoursToday"`
	AccessibilityNotes *string  `json:"accessibilityNotes"`
	RiskLevel          *string  `json:"riskLevel"`
}

type UpdateSiteRequest struct {
	Name               *string  `json:"name"`
	Address            *string  `json:"address"`
	PostalCode         *string  `json:"postalCode"`
	Lat                *float64 `json:"lat"`
	Lng                *float64 `json:"lng"`
	HoursToday         *string  `json:"hoursToday"`
	AccessibilityNotes *string  `json:"accessibilityNotes"`
	RiskLevel          *string  `json:"riskLevel"`
}

func (r *UpdateSiteRequest) Empty() bool {
	return r.Name == nil && r.Address == nil && r.PostalCode == nil &&
		r.Lat == nil && r.Lng == nil && r.HoursToday == nil &&
		r.AccessibilityNotes == nil && r.RiskLevel == nil
}
