package repository

import (
	"context"
	"database/sql"

	"metra-api/core/database"
	"metra-api/core/logger"
	"metra-api/modules/poll/entity"

	"github.com/google/uuid"
)

type PollRepositoryInterface interface {
	GetVote(ctx context.Context, eventID, voterID uuid.UUID, dimension entity.Dimension) (*entity.PollVote, error)
	UpsertVote(ctx context.Context, vote *entity.PollVote) (*entity.PollVote, error)
	DeleteVote(ctx context.Context, eventID, voterID uuid.UUID, dimension entity.Dimension) error
	Tally(ctx context.Context, eventID uuid.UUID, dimension entity.Dimension) ([]entity.OptionTally, error)
	CountVoters(ctx context.Context, eventID uuid.UUID) (int, error)
}

type PollRepository struct {
	db database.IDatabase
}

func NewPollRepository(db database.IDatabase) *PollRepository {
	return &PollRepository{db: db}
}

const voteColumns = `id, event_id, voter_id, dimension, option_id, created_at`

func (r *PollRepository) GetVote(ctx context.Context, eventID, voterID uuid.UUID, dimension entity.Dimension) (*entity.PollVote, error) {
	query := `SELECT ` + voteColumns + ` FROM poll_votes WHERE event_id = $1 AND voter_id = $2 AND dimension = $3`

	var vote entity.PollVote
	err := r.db.GetContext(ctx, &vote, query, eventID, voterID, dimension)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("PollRepository:GetVote:Error:", err)
		return nil, err
	}
	return &vote, nil
}

// UpsertVote records the voter's choice, replacing any previous vote on the
// same dimension in one statement.
func (r *PollRepository) UpsertVote(ctx context.Context, vote *entity.PollVote) (*entity.PollVote, error) {
	query := `
		INSERT INTO poll_votes (event_id, voter_id, dimension, option_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (event_id, voter_id, dimension)
		DO UPDATE SET option_id = EXCLUDED.option_id, updated_at = NOW()
		RETURNING ` + voteColumns

	var saved entity.PollVote
	err := r.db.GetContext(ctx, &saved, query, vote.EventID, vote.VoterID, vote.Dimension, vote.OptionID)
	if err != nil {
		logger.Error("PollRepository:UpsertVote:Error:", err)
		return nil, err
	}
	return &saved, nil
}

func (r *PollRepository) DeleteVote(ctx context.Context, eventID, voterID uuid.UUID, dimension entity.Dimension) error {
	query := `DELETE FROM poll_votes WHERE event_id = $1 AND voter_id = $2 AND dimension = $3`
	if err := r.db.ExecContext(ctx, query, eventID, voterID, dimension); err != nil {
		logger.Error("PollRepository:DeleteVote:Error:", err)
		return err
	}
	return nil
}

func (r *PollRepository) Tally(ctx context.Context, eventID uuid.UUID, dimension entity.Dimension) ([]entity.OptionTally, error) {
	query := `
		SELECT option_id, COUNT(*) AS votes
		FROM poll_votes
		WHERE event_id = $1 AND dimension = $2
		GROUP BY option_id
		ORDER BY votes DESC, option_id
	`

	tallies := []entity.OptionTally{}
	if err := r.db.SelectContext(ctx, &tallies, query, eventID, dimension); err != nil {
		logger.Error("PollRepository:Tally:Error:", err)
		return nil, err
	}
	return tallies, nil
}

func (r *PollRepository) CountVoters(ctx context.Context, eventID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(DISTINCT voter_id) FROM poll_votes WHERE event_id = $1`
	if err := r.db.GetContext(ctx, &count, query, eventID); err != nil {
		logger.Error("PollRepository:CountVoters:Error:", err)
		return 0, err
	}
	return count, nil
}
