package entity

import (
	"time"

	"metra-api/core/entity"

	"github.com/google/uuid"
)

// EventStatus is the server-enforced event state machine.
type EventStatus string

const (
	EventStatusOpen      EventStatus = "open"
	EventStatusFinalized EventStatus = "finalized"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusOpen, EventStatusFinalized, EventStatusCompleted, EventStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status change is allowed:
// open -> finalized -> completed, with cancellation possible before completion.
func (s EventStatus) CanTransitionTo(next EventStatus) bool {
	switch s {
	case EventStatusOpen:
		return next == EventStatusFinalized || next == EventStatusCancelled
	case EventStatusFinalized:
		return next == EventStatusCompleted || next == EventStatusCancelled
	}
	return false
}

// Event is a proposed food-donation gathering with candidate times and sites.
type Event struct {
	CreatorID   uuid.UUID   `db:"creator_id" json:"creator_id"`
	Title       string      `db:"title" json:"title"`
	Slug        string      `db:"slug" json:"slug"`
	Description *string     `db:"description" json:"description,omitempty"`
	Capacity    *int        `db:"capacity" json:"capacity,omitempty"`
	Status      EventStatus `db:"status" json:"status"`
	FinalTime   *string     `db:"final_time" json:"final_time,omitempty"`
	FinalSiteID *uuid.UUID  `db:"final_site_id" json:"final_site_id,omitempty"`
	entity.BaseEntity
}

// EventTimeOption is a candidate time window attached to an event.
type EventTimeOption struct {
	ID        uuid.UUID `db:"id" json:"id"`
	EventID   uuid.UUID `db:"event_id" json:"event_id"`
	OptionID  string    `db:"option_id" json:"option_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// EventSiteOption is a candidate site attached to an event.
type EventSiteOption struct {
	ID        uuid.UUID `db:"id" json:"id"`
	EventID   uuid.UUID `db:"event_id" json:"event_id"`
	SiteID    uuid.UUID `db:"site_id" json:"site_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// EventItem is a requested donation category with a target quantity.
type EventItem struct {
	ID         uuid.UUID `db:"id" json:"id"`
	EventID    uuid.UUID `db:"event_id" json:"event_id"`
	CategoryID string    `db:"category_id" json:"category_id"`
	TargetQty  int       `db:"target_qty" json:"target_qty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// EventRsvp records a participant's attendance intent.
type EventRsvp struct {
	ID        uuid.UUID `db:"id" json:"id"`
	EventID   uuid.UUID `db:"event_id" json:"event_id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// EventDetail is an event with its joined sub-collections.
type EventDetail struct {
	Event
	TimeOptions []EventTimeOption `json:"event_time_options"`
	SiteOptions []EventSiteOption `json:"event_site_options"`
	Items       []EventItem       `json:"event_items"`
	RsvpCount   int               `json:"rsvp_count"`
}

// HasTimeOption reports whether the detail carries the given time window.
func (d *EventDetail) HasTimeOption(optionID string) bool {
	for _, opt := range d.TimeOptions {
		if opt.OptionID == optionID {
			return true
		}
	}
	return false
}

// HasSiteOption reports whether the detail carries the given site.
func (d *EventDetail) HasSiteOption(siteID uuid.UUID) bool {
	for _, opt := range d.SiteOptions {
		if opt.SiteID == siteID {
			return true
		}
	}
	return false
}
