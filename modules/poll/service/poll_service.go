package service

import (
	"context"
	"fmt"

	"metra-api/core/errors"
	eventEntity "metra-api/modules/event/entity"
	eventRepository "metra-api/modules/event/repository"
	notifDto "metra-api/modules/notification/dto"
	notifEntity "metra-api/modules/notification/entity"
	"metra-api/modules/poll/dto"
	"metra-api/modules/poll/entity"
	"metra-api/modules/poll/repository"

	"github.com/google/uuid"
)

type Notifier interface {
	Notify(ctx context.Context, req *notifDto.CreateNotificationRequest)
}

type PollService struct {
	repo     repository.PollRepositoryInterface
	events   eventRepository.EventRepositoryInterface
	notifier Notifier
}

func NewPollService(repo repository.PollRepositoryInterface, events eventRepository.EventRepositoryInterface, notifier Notifier) *PollService {
	return &PollService{repo: repo, events: events, notifier: notifier}
}

func (s *PollService) eventDetail(ctx context.Context, eventID uuid.UUID) (*eventEntity.EventDetail, error) {
	detail, err := s.events.GetDetail(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load event", err)
	}
	if detail == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}
	return detail, nil
}

// Tally returns the current vote counts on both dimensions of an event poll.
func (s *PollService) Tally(ctx context.Context, eventID uuid.UUID) (*dto.TallyResponse, error) {
	if _, err := s.eventDetail(ctx, eventID); err != nil {
		return nil, err
	}

	timeTally, err := s.repo.Tally(ctx, eventID, entity.DimensionTime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to tally votes", err)
	}
	siteTally, err := s.repo.Tally(ctx, eventID, entity.DimensionSite)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to tally votes", err)
	}
	voters, err := s.repo.CountVoters(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to tally votes", err)
	}

	return &dto.TallyResponse{Time: timeTally, Site: siteTally, VoterCount: voters}, nil
}

// Cast records a vote. Voting the same option again retracts the vote, voting
// a different option replaces it. Votes are only accepted while the event is
// open and the option must be one of the event's candidates.
func (s *PollService) Cast(ctx context.Context, eventID, voterID uuid.UUID, req *dto.CastVoteRequest) (string, error) {
	detail, err := s.eventDetail(ctx, eventID)
	if err != nil {
		return "", err
	}
	if detail.Status != eventEntity.EventStatusOpen {
		return "", errors.NewAppError(errors.ErrConflict, "voting is closed for this event", nil)
	}

	dimension := entity.Dimension(req.Dimension)
	switch dimension {
	case entity.DimensionTime:
		if !detail.HasTimeOption(req.OptionID) {
			return "", errors.NewAppError(errors.ErrInvalidInput, "option is not one of the event's time options", nil)
		}
	case entity.DimensionSite:
		siteID, err := uuid.Parse(req.OptionID)
		if err != nil || !detail.HasSiteOption(siteID) {
			return "", errors.NewAppError(errors.ErrInvalidInput, "option is not one of the event's site options", nil)
		}
	default:
		return "", errors.NewAppError(errors.ErrInvalidInput, "unknown poll dimension", nil)
	}

	existing, err := s.repo.GetVote(ctx, eventID, voterID, dimension)
	if err != nil {
		return "", errors.NewAppError(errors.ErrGetFailed, "failed to load vote", err)
	}

	if existing != nil && existing.OptionID == req.OptionID {
		if err := s.repo.DeleteVote(ctx, eventID, voterID, dimension); err != nil {
			return "", errors.NewAppError(errors.ErrDeleteFailed, "failed to retract vote", err)
		}
		return "retracted", nil
	}

	vote := &entity.PollVote{
		EventID:   eventID,
		VoterID:   voterID,
		Dimension: dimension,
		OptionID:  req.OptionID,
	}
	if _, err := s.repo.UpsertVote(ctx, vote); err != nil {
		return "", errors.NewAppError(errors.ErrCreateFailed, "failed to record vote", err)
	}

	if s.notifier != nil && detail.CreatorID != voterID {
		s.notifier.Notify(ctx, &notifDto.CreateNotificationRequest{
			UserID:  detail.CreatorID,
			Title:   "New poll vote",
			Message: fmt.Sprintf("Someone voted on %q.", detail.Title),
			Type:    notifEntity.TypeVote,
			Data:    notifEntity.JSONB{"event_id": eventID.String(), "dimension": req.Dimension},
		})
	}
	return "recorded", nil
}
