package repository

import (
	"context"
	"database/sql"

	"metra-api/core/database"
	"metra-api/core/logger"
	"metra-api/modules/collab/entity"

	"github.com/google/uuid"
)

type CollabRepositoryInterface interface {
	CreatePending(ctx context.Context, eventID, donorID uuid.UUID) (*entity.CollabRequest, bool, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*entity.CollabRequestDetail, error)
	ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]entity.CollabRequestDetail, error)
	DecidePending(ctx context.Context, id uuid.UUID, status entity.CollabStatus, decidedBy uuid.UUID) (*entity.CollabRequest, error)
}

type CollabRepository struct {
	db database.IDatabase
}

func NewCollabRepository(db database.IDatabase) *CollabRepository {
	return &CollabRepository{db: db}
}

const collabColumns = `id, event_id, donor_id, status, decided_by, decided_at, created_at, updated_at`

// CreatePending inserts a pending request unless the donor already has one for
// the event; in that case the existing row is returned with existed=true. The
// partial unique index makes the insert race-safe.
func (r *CollabRepository) CreatePending(ctx context.Context, eventID, donorID uuid.UUID) (*entity.CollabRequest, bool, error) {
	insert := `
		INSERT INTO collab_requests (event_id, donor_id, status)
		VALUES ($1, $2, 'pending')
		ON CONFLICT (event_id, donor_id) WHERE status = 'pending' DO NOTHING
		RETURNING ` + collabColumns

	var created entity.CollabRequest
	err := r.db.GetContext(ctx, &created, insert, eventID, donorID)
	if err == nil {
		return &created, false, nil
	}
	if err != sql.ErrNoRows {
		logger.Error("CollabRepository:CreatePending:Error:", err)
		return nil, false, err
	}

	// Insert was a no-op, fetch the pending row that blocked it.
	query := `
		SELECT ` + collabColumns + `
		FROM collab_requests
		WHERE event_id = $1 AND donor_id = $2 AND status = 'pending'
	`
	var existing entity.CollabRequest
	if err := r.db.GetContext(ctx, &existing, query, eventID, donorID); err != nil {
		logger.Error("CollabRepository:CreatePending:Fetch:Error:", err)
		return nil, false, err
	}
	return &existing, true, nil
}

func (r *CollabRepository) GetDetail(ctx context.Context, id uuid.UUID) (*entity.CollabRequestDetail, error) {
	query := `
		SELECT cr.id, cr.event_id, cr.donor_id, cr.status, cr.decided_by, cr.decided_at,
		       cr.created_at, cr.updated_at,
		       e.creator_id AS event_creator_id, e.title AS event_title
		FROM collab_requests cr
		JOIN events e ON e.id = cr.event_id
		WHERE cr.id = $1
	`

	var detail entity.CollabRequestDetail
	err := r.db.GetContext(ctx, &detail, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("CollabRepository:GetDetail:Error:", err)
		return nil, err
	}
	return &detail, nil
}

func (r *CollabRepository) ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]entity.CollabRequestDetail, error) {
	query := `
		SELECT cr.id, cr.event_id, cr.donor_id, cr.status, cr.decided_by, cr.decided_at,
		       cr.created_at, cr.updated_at,
		       e.creator_id AS event_creator_id, e.title AS event_title
		FROM collab_requests cr
		JOIN events e ON e.id = cr.event_id
		WHERE e.creator_id = $1
		ORDER BY cr.created_at DESC
	`

	requests := []entity.CollabRequestDetail{}
	if err := r.db.SelectContext(ctx, &requests, query, organizerID); err != nil {
		logger.Error("CollabRepository:ListByOrganizer:Error:", err)
		return nil, err
	}
	return requests, nil
}

// DecidePending moves a still-pending request to a terminal status. Returns
// nil when the request was decided concurrently.
func (r *CollabRepository) DecidePending(ctx context.Context, id uuid.UUID, status entity.CollabStatus, decidedBy uuid.UUID) (*entity.CollabRequest, error) {
	query := `
		UPDATE collab_requests
		SET status = $2, decided_by = $3, decided_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + collabColumns

	var decided entity.CollabRequest
	err := r.db.GetContext(ctx, &decided, query, id, status, decidedBy)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		logger.Error("CollabRepository:DecidePending:Error:", err)
		return nil, err
	}
	return &decided, nil
}
