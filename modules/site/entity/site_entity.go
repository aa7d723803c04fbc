package entity

import (
	"metra-api/core/entity"
)

// Site is a candidate drop-off location for events.
type Site struct {
	Name               string   `db:"name" json:"name"`
	Address            string   `db:"address" json:"address"`
	PostalCode         string   `db:"postal_code" json:"postal_code"`
	Lat                *float64 `db:"lat" json:"lat,omitempty"`
	Lng                *float64 `db:"lng" json:"lng,omitempty"`
	HoursToday         *string  `db:"hours_today" json:"hours_today,omitempty"`
	AccessibilityNotes *string  `db:"accessibility_notes" json:"accessibility_notes,omitempty"`
	RiskLevel          *string  `db:"risk_level" json:"risk_level,omitempty"`
	PhotoURL           *string  `db:"photo_url" json:"photo_url,omitempty"`
	entity.BaseEntity
}
