package entity

import (
	"time"

	"github.com/google/uuid"
)

// Dimension is the axis a poll vote applies to.
type Dimension string

const (
	DimensionTime Dimension = "time"
	DimensionSite Dimension = "site"
)

func (d Dimension) Valid() bool {
	return d == DimensionTime || d == DimensionSite
}

// PollVote is one voter's current choice on one dimension of an event poll.
// A voter holds at most one vote per event per dimension.
type PollVote struct {
	ID        uuid.UUID `db:"id" json:"id"`
	EventID   uuid.UUID `db:"event_id" json:"event_id"`
	VoterID   uuid.UUID `db:"voter_id" json:"voter_id"`
	Dimension Dimension `db:"dimension" json:"dimension"`
	OptionID  string    `db:"option_id" json:"option_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// OptionTally is the vote count for a single option.
type OptionTally struct {
	OptionID string `db:"option_id" json:"option_id"`
	Votes    int    `db:"votes" json:"votes"`
}
