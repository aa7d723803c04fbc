package service

import (
	"context"
	"testing"

	"metra-api/core/errors"
	eventEntity "metra-api/modules/event/entity"
	notifDto "metra-api/modules/notification/dto"
	"metra-api/modules/poll/dto"
	"metra-api/modules/poll/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePollRepo struct {
	vote       *entity.PollVote
	upserted   *entity.PollVote
	deleted    bool
	timeTally  []entity.OptionTally
	siteTally  []entity.OptionTally
	voterCount int
}

func (f *fakePollRepo) GetVote(ctx context.Context, eventID, voterID uuid.UUID, dimension entity.Dimension) (*entity.PollVote, error) {
	return f.vote, nil
}

func (f *fakePollRepo) UpsertVote(ctx context.Context, vote *entity.PollVote) (*entity.PollVote, error) {
	f.upserted = vote
	return vote, nil
}

func (f *fakePollRepo) DeleteVote(ctx context.Context, eventID, voterID uuid.UUID, dimension entity.Dimension) error {
	f.deleted = true
	return nil
}

func (f *fakePollRepo) Tally(ctx context.Context, eventID uuid.UUID, dimension entity.Dimension) ([]entity.OptionTally, error) {
	if dimension == entity.DimensionTime {
		return f.timeTally, nil
	}
	return f.siteTally, nil
}

func (f *fakePollRepo) CountVoters(ctx context.Context, eventID uuid.UUID) (int, error) {
	return f.voterCount, nil
}

type fakeEventRepo struct {
	detail *eventEntity.EventDetail
}

func (f *fakeEventRepo) GetDetail(ctx context.Context, id uuid.UUID) (*eventEntity.EventDetail, error) {
	return f.detail, nil
}
func (f *fakeEventRepo) Create(ctx context.Context, event *eventEntity.Event, items []eventEntity.EventItem, timeOptionIDs []string, siteOptionIDs []uuid.UUID) (*eventEntity.Event, error) {
	return nil, nil
}
func (f *fakeEventRepo) GetByID(ctx context.Context, id uuid.UUID) (*eventEntity.Event, error) {
	if f.detail == nil {
		return nil, nil
	}
	return &f.detail.Event, nil
}
func (f *fakeEventRepo) List(ctx context.Context, limit int) ([]eventEntity.EventDetail, error) {
	return nil, nil
}
func (f *fakeEventRepo) ListByCreator(ctx context.Context, creatorID uuid.UUID, limit int) ([]eventEntity.EventDetail, error) {
	return nil, nil
}
func (f *fakeEventRepo) Update(ctx context.Context, event *eventEntity.Event) error { return nil }
func (f *fakeEventRepo) Delete(ctx context.Context, id uuid.UUID) error             { return nil }
func (f *fakeEventRepo) ListRsvps(ctx context.Context, eventID uuid.UUID) ([]eventEntity.EventRsvp, error) {
	return nil, nil
}
func (f *fakeEventRepo) ListRsvpUserIDs(ctx context.Context, eventID uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}
func (f *fakeEventRepo) DeleteRsvp(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	return false, nil
}
func (f *fakeEventRepo) InsertRsvpIfCapacity(ctx context.Context, eventID, userID uuid.UUID) (*eventEntity.EventRsvp, error) {
	return nil, nil
}

type fakeNotifier struct {
	sent []*notifDto.CreateNotificationRequest
}

func (f *fakeNotifier) Notify(ctx context.Context, req *notifDto.CreateNotificationRequest) {
	f.sent = append(f.sent, req)
}

func openPollEvent(creatorID uuid.UUID, siteID uuid.UUID) *eventEntity.EventDetail {
	return &eventEntity.EventDetail{
		Event: eventEntity.Event{
			CreatorID: creatorID,
			Title:     "Harvest swap",
			Status:    eventEntity.EventStatusOpen,
		},
		TimeOptions: []eventEntity.EventTimeOption{{OptionID: "sat-morning"}, {OptionID: "sun-noon"}},
		SiteOptions: []eventEntity.EventSiteOption{{SiteID: siteID}},
	}
}

func TestCastRecordsNewVote(t *testing.T) {
	creatorID := uuid.New()
	events := &fakeEventRepo{detail: openPollEvent(creatorID, uuid.New())}
	repo := &fakePollRepo{}
	notifier := &fakeNotifier{}
	svc := NewPollService(repo, events, notifier)

	state, err := svc.Cast(context.Background(), uuid.New(), uuid.New(), &dto.CastVoteRequest{
		Dimension: "time",
		OptionID:  "sat-morning",
	})

	require.NoError(t, err)
	assert.Equal(t, "recorded", state)
	require.NotNil(t, repo.upserted)
	assert.Equal(t, entity.DimensionTime, repo.upserted.Dimension)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, creatorID, notifier.sent[0].UserID)
}

func TestCastSameOptionRetracts(t *testing.T) {
	events := &fakeEventRepo{detail: openPollEvent(uuid.New(), uuid.New())}
	repo := &fakePollRepo{vote: &entity.PollVote{OptionID: "sat-morning", Dimension: entity.DimensionTime}}
	svc := NewPollService(repo, events, &fakeNotifier{})

	state, err := svc.Cast(context.Background(), uuid.New(), uuid.New(), &dto.CastVoteRequest{
		Dimension: "time",
		OptionID:  "sat-morning",
	})

	require.NoError(t, err)
	assert.Equal(t, "retracted", state)
	assert.True(t, repo.deleted)
	assert.Nil(t, repo.upserted)
}

func TestCastDifferentOptionReplaces(t *testing.T) {
	events := &fakeEventRepo{detail: openPollEvent(uuid.New(), uuid.New())}
	repo := &fakePollRepo{vote: &entity.PollVote{OptionID: "sat-morning", Dimension: entity.DimensionTime}}
	svc := NewPollService(repo, events, &fakeNotifier{})

	state, err := svc.Cast(context.Background(), uuid.New(), uuid.New(), &dto.CastVoteRequest{
		Dimension: "time",
		OptionID:  "sun-noon",
	})

	require.NoError(t, err)
	assert.Equal(t, "recorded", state)
	assert.False(t, repo.deleted)
	require.NotNil(t, repo.upserted)
	assert.Equal(t, "sun-noon", repo.upserted.OptionID)
}

func TestCastUnknownOptionRejected(t *testing.T) {
	events := &fakeEventRepo{detail: openPollEvent(uuid.New(), uuid.New())}
	svc := NewPollService(&fakePollRepo{}, events, &fakeNotifier{})

	_, err := svc.Cast(context.Background(), uuid.New(), uuid.New(), &dto.CastVoteRequest{
		Dimension: "time",
		OptionID:  "never-proposed",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestCastSiteOptionValidated(t *testing.T) {
	siteID := uuid.New()
	events := &fakeEventRepo{detail: openPollEvent(uuid.New(), siteID)}
	repo := &fakePollRepo{}
	svc := NewPollService(repo, events, &fakeNotifier{})

	state, err := svc.Cast(context.Background(), uuid.New(), uuid.New(), &dto.CastVoteRequest{
		Dimension: "site",
		OptionID:  siteID.String(),
	})

	require.NoError(t, err)
	assert.Equal(t, "recorded", state)
	assert.Equal(t, entity.DimensionSite, repo.upserted.Dimension)
}

func TestCastClosedEventRejected(t *testing.T) {
	detail := openPollEvent(uuid.New(), uuid.New())
	detail.Status = eventEntity.EventStatusFinalized
	events := &fakeEventRepo{detail: detail}
	svc := NewPollService(&fakePollRepo{}, events, &fakeNotifier{})

	_, err := svc.Cast(context.Background(), uuid.New(), uuid.New(), &dto.CastVoteRequest{
		Dimension: "time",
		OptionID:  "sat-morning",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConflict))
}

func TestTallyAggregatesBothDimensions(t *testing.T) {
	events := &fakeEventRepo{detail: openPollEvent(uuid.New(), uuid.New())}
	repo := &fakePollRepo{
		timeTally:  []entity.OptionTally{{OptionID: "sat-morning", Votes: 3}},
		siteTally:  []entity.OptionTally{{OptionID: uuid.New().String(), Votes: 2}},
		voterCount: 4,
	}
	svc := NewPollService(repo, events, &fakeNotifier{})

	tally, err := svc.Tally(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Len(t, tally.Time, 1)
	assert.Len(t, tally.Site, 1)
	assert.Equal(t, 4, tally.VoterCount)
}

func TestTallyEventNotFound(t *testing.T) {
	svc := NewPollService(&fakePollRepo{}, &fakeEventRepo{}, &fakeNotifier{})

	_, err := svc.Tally(context.Background(), uuid.New())

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}
