package service

import (
	"context"
	"testing"

	"metra-api/core/errors"
	"metra-api/modules/collab/dto"
	"metra-api/modules/collab/entity"
	eventEntity "metra-api/modules/event/entity"
	notifDto "metra-api/modules/notification/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCollabRepo struct {
	pending *entity.CollabRequest
	existed bool
	detail  *entity.CollabRequestDetail
	decided *entity.CollabRequest
	listed  []entity.CollabRequestDetail
}

func (f *fakeCollabRepo) CreatePending(ctx context.Context, eventID, donorID uuid.UUID) (*entity.CollabRequest, bool, error) {
	return f.pending, f.existed, nil
}

func (f *fakeCollabRepo) GetDetail(ctx context.Context, id uuid.UUID) (*entity.CollabRequestDetail, error) {
	return f.detail, nil
}

func (f *fakeCollabRepo) ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]entity.CollabRequestDetail, error) {
	return f.listed, nil
}

func (f *fakeCollabRepo) DecidePending(ctx context.Context, id uuid.UUID, status entity.CollabStatus, decidedBy uuid.UUID) (*entity.CollabRequest, error) {
	return f.decided, nil
}

type fakeEventLookup struct {
	event *eventEntity.Event
}

func (f *fakeEventLookup) GetByID(ctx context.Context, id uuid.UUID) (*eventEntity.Event, error) {
	return f.event, nil
}
func (f *fakeEventLookup) Create(ctx context.Context, event *eventEntity.Event, items []eventEntity.EventItem, timeOptionIDs []string, siteOptionIDs []uuid.UUID) (*eventEntity.Event, error) {
	return nil, nil
}
func (f *fakeEventLookup) GetDetail(ctx context.Context, id uuid.UUID) (*eventEntity.EventDetail, error) {
	return nil, nil
}
func (f *fakeEventLookup) List(ctx context.Context, limit int) ([]eventEntity.EventDetail, error) {
	return nil, nil
}
func (f *fakeEventLookup) ListByCreator(ctx context.Context, creatorID uuid.UUID, limit int) ([]eventEntity.EventDetail, error) {
	return nil, nil
}
func (f *fakeEventLookup) Update(ctx context.Context, event *eventEntity.Event) error { return nil }
func (f *fakeEventLookup) Delete(ctx context.Context, id uuid.UUID) error             { return nil }
func (f *fakeEventLookup) ListRsvps(ctx context.Context, eventID uuid.UUID) ([]eventEntity.EventRsvp, error) {
	return nil, nil
}
func (f *fakeEventLookup) ListRsvpUserIDs(ctx context.Context, eventID uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}
func (f *fakeEventLookup) DeleteRsvp(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	return false, nil
}
func (f *fakeEventLookup) InsertRsvpIfCapacity(ctx context.Context, eventID, userID uuid.UUID) (*eventEntity.EventRsvp, error) {
	return nil, nil
}

type fakeNotifier struct {
	sent []*notifDto.CreateNotificationRequest
}

func (f *fakeNotifier) Notify(ctx context.Context, req *notifDto.CreateNotificationRequest) {
	f.sent = append(f.sent, req)
}

func pendingRequest(eventID, donorID uuid.UUID) *entity.CollabRequest {
	request := &entity.CollabRequest{
		EventID: eventID,
		DonorID: donorID,
		Status:  entity.CollabStatusPending,
	}
	request.ID = uuid.New()
	return request
}

func TestCreateCollabNotifiesCreator(t *testing.T) {
	creatorID := uuid.New()
	donorID := uuid.New()
	eventID := uuid.New()

	events := &fakeEventLookup{event: &eventEntity.Event{CreatorID: creatorID, Title: "Soup night"}}
	repo := &fakeCollabRepo{pending: pendingRequest(eventID, donorID)}
	notifier := &fakeNotifier{}
	svc := NewCollabService(repo, events, notifier)

	result, err := svc.Create(context.Background(), eventID, donorID)

	require.NoError(t, err)
	assert.False(t, result.Existed)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, creatorID, notifier.sent[0].UserID)
}

func TestCreateCollabReturnsExistingPending(t *testing.T) {
	donorID := uuid.New()
	eventID := uuid.New()
	existing := pendingRequest(eventID, donorID)

	events := &fakeEventLookup{event: &eventEntity.Event{CreatorID: uuid.New(), Title: "Soup night"}}
	repo := &fakeCollabRepo{pending: existing, existed: true}
	notifier := &fakeNotifier{}
	svc := NewCollabService(repo, events, notifier)

	result, err := svc.Create(context.Background(), eventID, donorID)

	require.NoError(t, err)
	assert.True(t, result.Existed)
	assert.Equal(t, existing.ID, result.Request.ID)
	// No second notification for a request that already existed.
	assert.Empty(t, notifier.sent)
}

func TestCreateCollabOwnEventRejected(t *testing.T) {
	creatorID := uuid.New()
	events := &fakeEventLookup{event: &eventEntity.Event{CreatorID: creatorID}}
	svc := NewCollabService(&fakeCollabRepo{}, events, &fakeNotifier{})

	_, err := svc.Create(context.Background(), uuid.New(), creatorID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConflict))
}

func TestCreateCollabEventNotFound(t *testing.T) {
	svc := NewCollabService(&fakeCollabRepo{}, &fakeEventLookup{}, &fakeNotifier{})

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New())

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestDecideOnlyEventCreator(t *testing.T) {
	creatorID := uuid.New()
	detail := &entity.CollabRequestDetail{
		CollabRequest:  *pendingRequest(uuid.New(), uuid.New()),
		EventCreatorID: creatorID,
	}
	svc := NewCollabService(&fakeCollabRepo{detail: detail}, &fakeEventLookup{}, &fakeNotifier{})

	_, err := svc.Decide(context.Background(), detail.ID, uuid.New(), &dto.DecideCollabRequest{Status: "accepted"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrForbidden))
}

func TestDecideAlreadyDecided(t *testing.T) {
	creatorID := uuid.New()
	request := pendingRequest(uuid.New(), uuid.New())
	request.Status = entity.CollabStatusAccepted
	detail := &entity.CollabRequestDetail{CollabRequest: *request, EventCreatorID: creatorID}
	svc := NewCollabService(&fakeCollabRepo{detail: detail}, &fakeEventLookup{}, &fakeNotifier{})

	_, err := svc.Decide(context.Background(), request.ID, creatorID, &dto.DecideCollabRequest{Status: "declined"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConflict))
}

func TestDecideAcceptedNotifiesDonor(t *testing.T) {
	creatorID := uuid.New()
	donorID := uuid.New()
	request := pendingRequest(uuid.New(), donorID)
	detail := &entity.CollabRequestDetail{CollabRequest: *request, EventCreatorID: creatorID, EventTitle: "Soup night"}
	decided := *request
	decided.Status = entity.CollabStatusAccepted

	notifier := &fakeNotifier{}
	svc := NewCollabService(&fakeCollabRepo{detail: detail, decided: &decided}, &fakeEventLookup{}, notifier)

	result, err := svc.Decide(context.Background(), request.ID, creatorID, &dto.DecideCollabRequest{Status: "accepted"})

	require.NoError(t, err)
	assert.Equal(t, entity.CollabStatusAccepted, result.Status)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, donorID, notifier.sent[0].UserID)
}

func TestDecideLostRaceConflicts(t *testing.T) {
	creatorID := uuid.New()
	detail := &entity.CollabRequestDetail{
		CollabRequest:  *pendingRequest(uuid.New(), uuid.New()),
		EventCreatorID: creatorID,
	}
	// Repo reports no pending row left to update.
	svc := NewCollabService(&fakeCollabRepo{detail: detail}, &fakeEventLookup{}, &fakeNotifier{})

	_, err := svc.Decide(context.Background(), detail.ID, creatorID, &dto.DecideCollabRequest{Status: "accepted"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConflict))
}
