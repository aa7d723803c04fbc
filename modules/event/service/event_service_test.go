package service

import (
	"context"
	"testing"

	"metra-api/core/errors"
	"metra-api/modules/event/dto"
	"metra-api/modules/event/entity"
	"metra-api/modules/event/repository"
	notifDto "metra-api/modules/notification/dto"
	notifEntity "metra-api/modules/notification/entity"
	siteEntity "metra-api/modules/site/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventRepo struct {
	detail       *entity.EventDetail
	created      *entity.Event
	updated      *entity.Event
	rsvpDeleted  bool
	rsvpInserted *entity.EventRsvp
	insertErr    error
	rsvpUserIDs  []uuid.UUID
}

func (f *fakeEventRepo) Create(ctx context.Context, event *entity.Event, items []entity.EventItem, timeOptionIDs []string, siteOptionIDs []uuid.UUID) (*entity.Event, error) {
	f.created = event
	copied := *event
	copied.ID = uuid.New()
	if f.detail == nil {
		f.detail = &entity.EventDetail{Event: copied}
	}
	return &copied, nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	if f.detail == nil {
		return nil, nil
	}
	return &f.detail.Event, nil
}

func (f *fakeEventRepo) GetDetail(ctx context.Context, id uuid.UUID) (*entity.EventDetail, error) {
	return f.detail, nil
}

func (f *fakeEventRepo) List(ctx context.Context, limit int) ([]entity.EventDetail, error) {
	return []entity.EventDetail{}, nil
}

func (f *fakeEventRepo) ListByCreator(ctx context.Context, creatorID uuid.UUID, limit int) ([]entity.EventDetail, error) {
	return []entity.EventDetail{}, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, event *entity.Event) error {
	f.updated = event
	f.detail.Event = *event
	return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeEventRepo) ListRsvps(ctx context.Context, eventID uuid.UUID) ([]entity.EventRsvp, error) {
	return []entity.EventRsvp{}, nil
}

func (f *fakeEventRepo) ListRsvpUserIDs(ctx context.Context, eventID uuid.UUID) ([]uuid.UUID, error) {
	return f.rsvpUserIDs, nil
}

func (f *fakeEventRepo) DeleteRsvp(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	return f.rsvpDeleted, nil
}

func (f *fakeEventRepo) InsertRsvpIfCapacity(ctx context.Context, eventID, userID uuid.UUID) (*entity.EventRsvp, error) {
	return f.rsvpInserted, f.insertErr
}

type fakeSiteRepo struct {
	created *siteEntity.Site
}

func (f *fakeSiteRepo) Create(ctx context.Context, site *siteEntity.Site) (*siteEntity.Site, error) {
	copied := *site
	copied.ID = uuid.New()
	f.created = &copied
	return &copied, nil
}

func (f *fakeSiteRepo) GetByID(ctx context.Context, id uuid.UUID) (*siteEntity.Site, error) {
	return nil, nil
}
func (f *fakeSiteRepo) List(ctx context.Context, limit int) ([]siteEntity.Site, error) {
	return nil, nil
}
func (f *fakeSiteRepo) Update(ctx context.Context, site *siteEntity.Site) error { return nil }
func (f *fakeSiteRepo) Delete(ctx context.Context, id uuid.UUID) error          { return nil }
func (f *fakeSiteRepo) CountEventReferences(ctx context.Context, id uuid.UUID) (int, error) {
	return 0, nil
}

type fakeNotifier struct {
	sent      []*notifDto.CreateNotificationRequest
	broadcast []uuid.UUID
}

func (f *fakeNotifier) Notify(ctx context.Context, req *notifDto.CreateNotificationRequest) {
	f.sent = append(f.sent, req)
}

func (f *fakeNotifier) NotifyAll(ctx context.Context, userIDs []uuid.UUID, title, message, notifType string, data notifEntity.JSONB) {
	f.broadcast = append(f.broadcast, userIDs...)
}

func openEventDetail(creatorID uuid.UUID) *entity.EventDetail {
	siteID := uuid.New()
	return &entity.EventDetail{
		Event: entity.Event{
			CreatorID: creatorID,
			Title:     "Community pantry drop",
			Status:    entity.EventStatusOpen,
		},
		TimeOptions: []entity.EventTimeOption{{OptionID: "sat-morning"}},
		SiteOptions: []entity.EventSiteOption{{SiteID: siteID}},
	}
}

func TestCreateEventUsesInlineSite(t *testing.T) {
	repo := &fakeEventRepo{}
	sites := &fakeSiteRepo{}
	svc := NewEventService(repo, sites, &fakeNotifier{})

	_, err := svc.Create(context.Background(), uuid.New(), &dto.CreateEventRequest{
		Title:       "Produce share",
		TimeOptions: []string{"sun-noon"},
		NewSite: &dto.NewSiteInput{
			Name:       "North Hall",
			Address:    "12 Main St",
			PostalCode: "94117",
		},
	})

	require.NoError(t, err)
	require.NotNil(t, sites.created)
	assert.Equal(t, "North Hall", sites.created.Name)
	assert.Equal(t, entity.EventStatusOpen, repo.created.Status)
	assert.NotEmpty(t, repo.created.Slug)
}

func TestUpdateEventOnlyCreator(t *testing.T) {
	creatorID := uuid.New()
	repo := &fakeEventRepo{detail: openEventDetail(creatorID)}
	svc := NewEventService(repo, &fakeSiteRepo{}, &fakeNotifier{})

	title := "New title"
	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), &dto.UpdateEventRequest{Title: &title})

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrForbidden))
}

func TestUpdateEventEmptyPatch(t *testing.T) {
	creatorID := uuid.New()
	repo := &fakeEventRepo{detail: openEventDetail(creatorID)}
	svc := NewEventService(repo, &fakeSiteRepo{}, &fakeNotifier{})

	_, err := svc.Update(context.Background(), uuid.New(), creatorID, &dto.UpdateEventRequest{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestFinalizeRequiresKnownOptions(t *testing.T) {
	creatorID := uuid.New()
	repo := &fakeEventRepo{detail: openEventDetail(creatorID)}
	svc := NewEventService(repo, &fakeSiteRepo{}, &fakeNotifier{})

	status := "finalized"
	finalTime := "never-proposed"
	_, err := svc.Update(context.Background(), uuid.New(), creatorID, &dto.UpdateEventRequest{
		Status:    &status,
		FinalTime: &finalTime,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestFinalizeNotifiesRsvpdUsers(t *testing.T) {
	creatorID := uuid.New()
	detail := openEventDetail(creatorID)
	attendee := uuid.New()
	repo := &fakeEventRepo{detail: detail, rsvpUserIDs: []uuid.UUID{attendee}}
	notifier := &fakeNotifier{}
	svc := NewEventService(repo, &fakeSiteRepo{}, notifier)

	status := "finalized"
	finalTime := detail.TimeOptions[0].OptionID
	finalSite := detail.SiteOptions[0].SiteID.String()
	_, err := svc.Update(context.Background(), uuid.New(), creatorID, &dto.UpdateEventRequest{
		Status:      &status,
		FinalTime:   &finalTime,
		FinalSiteID: &finalSite,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.EventStatusFinalized, repo.updated.Status)
	assert.Equal(t, []uuid.UUID{attendee}, notifier.broadcast)
}

func TestPatchFinalTimeOnFinalizedEventValidated(t *testing.T) {
	creatorID := uuid.New()
	detail := openEventDetail(creatorID)
	detail.Status = entity.EventStatusFinalized
	finalTime := detail.TimeOptions[0].OptionID
	detail.FinalTime = &finalTime
	siteID := detail.SiteOptions[0].SiteID
	detail.FinalSiteID = &siteID
	repo := &fakeEventRepo{detail: detail}
	svc := NewEventService(repo, &fakeSiteRepo{}, &fakeNotifier{})

	// No status change in the patch, just moving the final time outside the
	// proposed options.
	rogue := "never-proposed"
	_, err := svc.Update(context.Background(), uuid.New(), creatorID, &dto.UpdateEventRequest{FinalTime: &rogue})

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
	assert.Nil(t, repo.updated)
}

func TestInvalidStatusTransition(t *testing.T) {
	creatorID := uuid.New()
	detail := openEventDetail(creatorID)
	detail.Status = entity.EventStatusCompleted
	repo := &fakeEventRepo{detail: detail}
	svc := NewEventService(repo, &fakeSiteRepo{}, &fakeNotifier{})

	status := "open"
	_, err := svc.Update(context.Background(), uuid.New(), creatorID, &dto.UpdateEventRequest{Status: &status})

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConflict))
}

func TestToggleRsvpJoinNotifiesCreator(t *testing.T) {
	creatorID := uuid.New()
	repo := &fakeEventRepo{
		detail:       openEventDetail(creatorID),
		rsvpInserted: &entity.EventRsvp{ID: uuid.New()},
	}
	notifier := &fakeNotifier{}
	svc := NewEventService(repo, &fakeSiteRepo{}, notifier)

	state, err := svc.ToggleRsvp(context.Background(), uuid.New(), uuid.New())

	require.NoError(t, err)
	assert.Equal(t, "joined", state)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, creatorID, notifier.sent[0].UserID)
}

func TestToggleRsvpRemoves(t *testing.T) {
	repo := &fakeEventRepo{detail: openEventDetail(uuid.New()), rsvpDeleted: true}
	svc := NewEventService(repo, &fakeSiteRepo{}, &fakeNotifier{})

	state, err := svc.ToggleRsvp(context.Background(), uuid.New(), uuid.New())

	require.NoError(t, err)
	assert.Equal(t, "removed", state)
}

func TestToggleRsvpAtCapacity(t *testing.T) {
	repo := &fakeEventRepo{detail: openEventDetail(uuid.New())}
	svc := NewEventService(repo, &fakeSiteRepo{}, &fakeNotifier{})

	_, err := svc.ToggleRsvp(context.Background(), uuid.New(), uuid.New())

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCapacityReached))
}

func TestToggleRsvpDuplicateRaceCountsAsJoined(t *testing.T) {
	repo := &fakeEventRepo{detail: openEventDetail(uuid.New()), insertErr: repository.ErrDuplicateRsvp}
	svc := NewEventService(repo, &fakeSiteRepo{}, &fakeNotifier{})

	state, err := svc.ToggleRsvp(context.Background(), uuid.New(), uuid.New())

	require.NoError(t, err)
	assert.Equal(t, "joined", state)
}

func TestGetEventNotFound(t *testing.T) {
	svc := NewEventService(&fakeEventRepo{}, &fakeSiteRepo{}, &fakeNotifier{})

	_, err := svc.Get(context.Background(), uuid.New())

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}
