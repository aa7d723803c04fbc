package repository

import (
	"context"
	"database/sql"

	"metra-api/core/database"
	"metra-api/core/logger"
	"metra-api/modules/site/entity"

	"github.com/google/uuid"
)

type SiteRepositoryInterface interface {
	Create(ctx context.Context, site *entity.Site) (*entity.Site, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Site, error)
	List(ctx context.Context, limit int) ([]entity.Site, error)
	Update(ctx context.Context, site *entity.Site) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountEventReferences(ctx context.Context, id uuid.UUID) (int, error)
}

type SiteRepository struct {
	db database.IDatabase
}

func NewSiteRepository(db database.IDatabase) *SiteRepository {
	return &SiteRepository{db: db}
}

const siteColumns = `id, name, address, postal_code, lat, lng, hours_today, accessibility_notes, risk_level, photo_url, created_at, updated_at`

func (r *SiteRepository) Create(ctx context.Context, site *entity.Site) (*entity.Site, error) {
	query := `
		INSERT INTO sites (name, address, postal_code, lat, lng, hours_today, accessibility_notes, risk_level)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + siteColumns

	var created entity.Site
	err := r.db.GetContext(ctx, &created, query,
		site.Name, site.Address, site.PostalCode, site.Lat, site.Lng,
		site.HoursToday, site.AccessibilityNotes, site.RiskLevel)
	if err != nil {
		logger.Error("SiteRepository:Create:Error:", err)
		return nil, err
	}
	return &created, nil
}

func (r *SiteRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Site, error) {
	query := `SELECT ` + siteColumns + ` FROM sites WHERE id = $1`

	var site entity.Site
	err := r.db.GetContext(ctx, &site, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("SiteRepository:GetByID:Error:", err)
		return nil, err
	}
	return &site, nil
}

func (r *SiteRepository) List(ctx context.Context, limit int) ([]entity.Site, error) {
	query := `SELECT ` + siteColumns + ` FROM sites ORDER BY created_at DESC LIMIT $1`

	var sites []entity.Site
	err := r.db.SelectContext(ctx, &sites, query, limit)
	if err != nil {
		logger.Error("SiteRepository:List:Error:", err)
		return nil, err
	}
	return sites, nil
}

func (r *SiteRepository) Update(ctx context.Context, site *entity.Site) error {
	query := `
		UPDATE sites
		SET name = $2, address = $3, postal_code = $4, lat = $5, lng = $6,
		    hours_today = $7, accessibility_notes = $8, risk_level = $9, photo_url = $10, updated_at = NOW()
		WHERE id = $1
	`
	err := r.db.ExecContext(ctx, query,
		site.ID, site.Name, site.Address, site.PostalCode, site.Lat, site.Lng,
		site.HoursToday, site.AccessibilityNotes, site.RiskLevel, site.PhotoURL)
	if err != nil {
		logger.Error("SiteRepository:Update:Error:", err)
		return err
	}
	return nil
}

func (r *SiteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM sites WHERE id = $1`
	err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("SiteRepository:Delete:Error:", err)
		return err
	}
	return nil
}

// CountEventReferences counts event_site_options rows pointing at the site.
func (r *SiteRepository) CountEventReferences(ctx context.Context, id uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM event_site_options WHERE site_id = $1`
	err := r.db.GetContext(ctx, &count, query, id)
	if err != nil {
		logger.Error("SiteRepository:CountEventReferences:Error:", err)
		return 0, err
	}
	return count, nil
}
