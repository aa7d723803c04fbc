package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"metra-api/core/errors"
	"metra-api/modules/site/dto"
	"metra-api/modules/site/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSiteRepo struct {
	site    *entity.Site
	refs    int
	deleted bool
	updated *entity.Site
}

func (f *fakeSiteRepo) Create(ctx context.Context, site *entity.Site) (*entity.Site, error) {
	copied := *site
	copied.ID = uuid.New()
	return &copied, nil
}

func (f *fakeSiteRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Site, error) {
	return f.site, nil
}

func (f *fakeSiteRepo) List(ctx context.Context, limit int) ([]entity.Site, error) {
	return nil, nil
}

func (f *fakeSiteRepo) Update(ctx context.Context, site *entity.Site) error {
	f.updated = site
	return nil
}

func (f *fakeSiteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.deleted = true
	return nil
}

func (f *fakeSiteRepo) CountEventReferences(ctx context.Context, id uuid.UUID) (int, error) {
	return f.refs, nil
}

type fakeUploader struct {
	key         string
	contentType string
	body        string
}

func (f *fakeUploader) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.key = key
	f.contentType = contentType
	f.body = string(data)
	return "https://cdn.example.com/" + key, nil
}

func storedSite() *entity.Site {
	site := &entity.Site{
		Name:       "North Hall",
		Address:    "12 Main St",
		PostalCode: "94117",
	}
	site.ID = uuid.New()
	return site
}

func TestListNeverReturnsNil(t *testing.T) {
	svc := NewSiteService(&fakeSiteRepo{}, nil)

	sites, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, sites)
	assert.Empty(t, sites)
}

func TestUpdateEmptyPatchRejected(t *testing.T) {
	svc := NewSiteService(&fakeSiteRepo{site: storedSite()}, nil)

	_, err := svc.Update(context.Background(), uuid.New(), &dto.UpdateSiteRequest{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestUpdateAppliesPartialFields(t *testing.T) {
	repo := &fakeSiteRepo{site: storedSite()}
	svc := NewSiteService(repo, nil)

	name := "South Hall"
	updated, err := svc.Update(context.Background(), uuid.New(), &dto.UpdateSiteRequest{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, "South Hall", updated.Name)
	assert.Equal(t, "12 Main St", updated.Address)
}

func TestDeleteReferencedSiteConflicts(t *testing.T) {
	repo := &fakeSiteRepo{site: storedSite(), refs: 2}
	svc := NewSiteService(repo, nil)

	err := svc.Delete(context.Background(), uuid.New())

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConflict))
	assert.False(t, repo.deleted)
}

func TestDeleteUnreferencedSite(t *testing.T) {
	repo := &fakeSiteRepo{site: storedSite()}
	svc := NewSiteService(repo, nil)

	err := svc.Delete(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.True(t, repo.deleted)
}

func TestUploadPhotoStoresURL(t *testing.T) {
	repo := &fakeSiteRepo{site: storedSite()}
	uploader := &fakeUploader{}
	svc := NewSiteService(repo, uploader)

	id := uuid.New()
	site, err := svc.UploadPhoto(context.Background(), id, "front.JPG", "image/jpeg", strings.NewReader("jpeg-bytes"))

	require.NoError(t, err)
	require.NotNil(t, site.PhotoURL)
	assert.Equal(t, "https://cdn.example.com/"+uploader.key, *site.PhotoURL)
	assert.True(t, strings.HasPrefix(uploader.key, "sites/"+id.String()+"/"))
	assert.True(t, strings.HasSuffix(uploader.key, ".jpg"))
	assert.Equal(t, "image/jpeg", uploader.contentType)
	assert.Equal(t, "jpeg-bytes", uploader.body)
	require.NotNil(t, repo.updated)
	assert.Equal(t, site.PhotoURL, repo.updated.PhotoURL)
}

func TestUploadPhotoWithoutStorage(t *testing.T) {
	repo := &fakeSiteRepo{site: storedSite()}
	svc := NewSiteService(repo, nil)

	_, err := svc.UploadPhoto(context.Background(), uuid.New(), "front.jpg", "image/jpeg", strings.NewReader("x"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConflict))
	assert.Nil(t, repo.updated)
}

func TestGetMissingSite(t *testing.T) {
	svc := NewSiteService(&fakeSiteRepo{}, nil)

	_, err := svc.Get(context.Background(), uuid.New())

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}
