package dto

// ===================== Request DTOs =====================

// EventItemInput is a requested donation category line on event create.
type EventItemInput struct {
	CategoryID string `json:"categoryId" validate:"required"`
	TargetQty  int    `json:"targetQty" validate:"min=0"`
}

// NewSiteInput lets an event create carry an inline site that does not exist
// yet; it is created first and added to the event's site options.
type NewSiteInput struct {
	Name       string   `json:"name" validate:"required"`
	Address    string   `json:"address" validate:"required"`
	PostalCode string   `json:"postalCode" validate:"required"`
	Lat        *float64 `json:"lat"`
	Lng        *float64 `json:"lng"`
}

type CreateEventRequest struct {
	Title       string           `json:"title" validate:"required"`
	Description *string          `json:"description"`
	Capacity    *int             `json:"capacity" validate:"omitempty,min=1"`
	Items       []EventItemInput `json:"items" validate:"dive"`
	TimeOptions []string         `json:"timeOptions"`
	SiteOptions []string         `json:"siteOptions"`
	NewSite     *NewSiteInput    `json:"newSite"`
}

type UpdateEventRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Capacity    *int    `json:"capacity" validate:"omitempty,min=1"`
	FinalTime   *string `json:"finalTime"`
	FinalSiteID *string `json:"finalSiteId"`
	Status      *string `json:"status" validate:"omitempty,oneof=open finalized completed cancelled"`
}

func (r *UpdateEventRequest) Empty() bool {
	return r.Title == nil && r.Description == nil && r.Capacity == nil &&
		r.FinalTime == nil && r.FinalSiteID == nil && r.Status == nil
}
