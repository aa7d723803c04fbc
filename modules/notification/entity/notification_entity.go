package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Notification types.
const (
	TypeRsvp      = "rsvp"
	TypeFinalized = "finalized"
	TypeVote      = "vote"
	TypeCollab    = "collab"
	TypeBroadcast = "broadcast"
)

// JSONB stores arbitrary structured data in a jsonb column.
type JSONB map[string]any

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value any) error {
	if value == nil {
		*j = nil
		return nil
	}
	data, ok := value.([]byte)
	if !ok {
		return errors.New("jsonb scan: expected []byte")
	}
	return json.Unmarshal(data, j)
}

type Notification struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Title     string    `db:"title" json:"title"`
	Message   string    `db:"message" json:"message"`
	Type      string    `db:"type" json:"type"`
	Data      JSONB     `db:"data" json:"data,omitempty"`
	IsRead    bool      `db:"is_read" json:"is_read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
