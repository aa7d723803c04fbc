package service

import (
	"context"
	"io"
	"path"
	"strings"

	"metra-api/core/constants"
	"metra-api/core/errors"
	"metra-api/core/utils"
	"metra-api/modules/site/dto"
	"metra-api/modules/site/entity"
	"metra-api/modules/site/repository"

	"github.com/google/uuid"
)

// Uploader is the slice of object storage the site flow needs.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

type SiteService struct {
	repo     repository.SiteRepositoryInterface
	uploader Uploader
}

func NewSiteService(repo repository.SiteRepositoryInterface, uploader Uploader) *SiteService {
	return &SiteService{repo: repo, uploader: uploader}
}

func (s *SiteService) Create(ctx context.Context, req *dto.CreateSiteRequest) (*entity.Site, error) {
	site := &entity.Site{
		Name:               req.Name,
		Address:            req.Address,
		PostalCode:         req.PostalCode,
		Lat:                req.Lat,
		Lng:                req.Lng,
		HoursToday:         req.HoursToday,
		AccessibilityNotes: req.AccessibilityNotes,
		RiskLevel:          req.RiskLevel,
	}

	created, err := s.repo.Create(ctx, site)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to create site", err)
	}
	return created, nil
}

func (s *SiteService) Get(ctx context.Context, id uuid.UUID) (*entity.Site, error) {
	site, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load site", err)
	}
	if site == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "site not found", nil)
	}
	return site, nil
}

func (s *SiteService) List(ctx context.Context) ([]entity.Site, error) {
	sites, err := s.repo.List(ctx, constants.DefaultSiteListLimit)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to list sites", err)
	}
	if sites == nil {
		sites = []entity.Site{}
	}
	return sites, nil
}

func (s *SiteService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateSiteRequest) (*entity.Site, error) {
	if req.Empty() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "no fields to update", nil)
	}

	site, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		site.Name = *req.Name
	}
	if req.Address != nil {
		site.Address = *req.Address
	}
	if req.PostalCode != nil {
		site.PostalCode = *req.PostalCode
	}
	if req.Lat != nil {
		site.Lat = req.Lat
	}
	if req.Lng != nil {
		site.Lng = req.Lng
	}
	if req.HoursToday != nil {
		site.HoursToday = req.HoursToday
	}
	if req.AccessibilityNotes != nil {
		site.AccessibilityNotes = req.AccessibilityNotes
	}
	if req.RiskLevel != nil {
		site.RiskLevel = req.RiskLevel
	}

	if err := s.repo.Update(ctx, site); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to update site", err)
	}
	return site, nil
}

// UploadPhoto stores a site photo in object storage and records its URL.
func (s *SiteService) UploadPhoto(ctx context.Context, id uuid.UUID, filename, contentType string, body io.Reader) (*entity.Site, error) {
	if s.uploader == nil {
		return nil, errors.NewAppError(errors.ErrConflict, "photo uploads are not enabled", nil)
	}

	site, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(path.Ext(filename))
	key := "sites/" + id.String() + "/" + utils.GenerateID() + ext
	url, err := s.uploader.Upload(ctx, key, contentType, body)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to upload photo", err)
	}

	site.PhotoURL = &url
	if err := s.repo.Update(ctx, site); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to save photo url", err)
	}
	return site, nil
}

// Delete removes a site unless it is still referenced as an event site option.
func (s *SiteService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	refs, err := s.repo.CountEventReferences(ctx, id)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "failed to check site references", err)
	}
	if refs > 0 {
		return errors.NewAppError(errors.ErrConflict, "site is referenced by events and cannot be deleted", nil)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "failed to delete site", err)
	}
	return nil
}
