package entity

import (
	"time"

	"metra-api/core/entity"

	"github.com/google/uuid"
)

// CollabStatus is the two-step approval state of a collaboration request.
type CollabStatus string

const (
	CollabStatusPending  CollabStatus = "pending"
	CollabStatusAccepted CollabStatus = "accepted"
	CollabStatusDeclined CollabStatus = "declined"
)

func (s CollabStatus) Valid() bool {
	return s == CollabStatusPending || s == CollabStatusAccepted || s == CollabStatusDeclined
}

// Decided reports whether the status is terminal.
func (s CollabStatus) Decided() bool {
	return s == CollabStatusAccepted || s == CollabStatusDeclined
}

// CollabRequest is a donor's request to co-host another donor's event.
type CollabRequest struct {
	EventID   uuid.UUID    `db:"event_id" json:"event_id"`
	DonorID   uuid.UUID    `db:"donor_id" json:"donor_id"`
	Status    CollabStatus `db:"status" json:"status"`
	DecidedBy *uuid.UUID   `db:"decided_by" json:"decided_by,omitempty"`
	DecidedAt *time.Time   `db:"decided_at" json:"decided_at,omitempty"`
	entity.BaseEntity
}

// CollabRequestDetail carries the owning event's creator and title so the
// decision flow can authorize and describe without extra lookups.
type CollabRequestDetail struct {
	CollabRequest
	EventCreatorID uuid.UUID `db:"event_creator_id" json:"event_creator_id"`
	EventTitle     string    `db:"event_title" json:"event_title"`
}
