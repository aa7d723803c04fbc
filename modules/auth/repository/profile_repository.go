package repository

import (
	"context"
	"database/sql"

	"metra-api/core/database"
	"metra-api/core/logger"
	"metra-api/modules/auth/entity"

	"github.com/google/uuid"
)

type ProfileRepositoryInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error)
	GetByAuthID(ctx context.Context, authID string) (*entity.Profile, error)
	Upsert(ctx context.Context, profile *entity.Profile) (*entity.Profile, error)
	Update(ctx context.Context, profile *entity.Profile) error
}

type ProfileRepository struct {
	db database.IDatabase
}

func NewProfileRepository(db database.IDatabase) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileColumns = `id, auth_id, email, name, role, visibility, dm_allowed, postal_code, created_at, updated_at`

func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

	var profile entity.Profile
	err := r.db.GetContext(ctx, &profile, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ProfileRepository:GetByID:Error:", err)
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) GetByAuthID(ctx context.Context, authID string) (*entity.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE auth_id = $1`

	var profile entity.Profile
	err := r.db.GetContext(ctx, &profile, query, authID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ProfileRepository:GetByAuthID:Error:", err)
		return nil, err
	}
	return &profile, nil
}

// Upsert inserts a profile keyed by auth_id; a concurrent or earlier sync for
// the same auth_id wins and the existing row is returned untouched.
func (r *ProfileRepository) Upsert(ctx context.Context, profile *entity.Profile) (*entity.Profile, error) {
	query := `
		INSERT INTO profiles (auth_id, email, name, role, visibility, dm_allowed)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (auth_id) DO NOTHING
		RETURNING ` + profileColumns

	var created entity.Profile
	err := r.db.GetContext(ctx, &created, query,
		profile.AuthID, profile.Email, profile.Name,
		profile.Role, profile.Visibility, profile.DMAllowed)
	if err == nil {
		return &created, nil
	}
	if err != sql.ErrNoRows {
		logger.Error("ProfileRepository:Upsert:Error:", err)
		return nil, err
	}

	// Conflict path: the row already exists.
	return r.GetByAuthID(ctx, profile.AuthID)
}

func (r *ProfileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	query := `
		UPDATE profiles
		SET name = $2, role = $3, visibility = $4, dm_allowed = $5, postal_code = $6, updated_at = NOW()
		WHERE id = $1
	`
	err := r.db.ExecContext(ctx, query,
		profile.ID, profile.Name, profile.Role, profile.Visibility,
		profile.DMAllowed, profile.PostalCode)
	if err != nil {
		logger.Error("ProfileRepository:Update:Error:", err)
		return err
	}
	return nil
}
