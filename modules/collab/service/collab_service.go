package service

import (
	"context"
	"fmt"

	"metra-api/core/errors"
	"metra-api/modules/collab/dto"
	"metra-api/modules/collab/entity"
	"metra-api/modules/collab/repository"
	eventRepository "metra-api/modules/event/repository"
	notifDto "metra-api/modules/notification/dto"
	notifEntity "metra-api/modules/notification/entity"

	"github.com/google/uuid"
)

type Notifier interface {
	Notify(ctx context.Context, req *notifDto.CreateNotificationRequest)
}

type CollabService struct {
	repo     repository.CollabRepositoryInterface
	events   eventRepository.EventRepositoryInterface
	notifier Notifier
}

func NewCollabService(repo repository.CollabRepositoryInterface, events eventRepository.EventRepositoryInterface, notifier Notifier) *CollabService {
	return &CollabService{repo: repo, events: events, notifier: notifier}
}

// Create files a pending collaboration request, or returns the donor's
// existing pending request for the event unchanged.
func (s *CollabService) Create(ctx context.Context, eventID, donorID uuid.UUID) (*dto.CreateCollabResponse, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}
	if event.CreatorID == donorID {
		return nil, errors.NewAppError(errors.ErrConflict, "cannot request collaboration on your own event", nil)
	}

	request, existed, err := s.repo.CreatePending(ctx, eventID, donorID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to create collab request", err)
	}

	if !existed && s.notifier != nil {
		s.notifier.Notify(ctx, &notifDto.CreateNotificationRequest{
			UserID:  event.CreatorID,
			Title:   "Collaboration request",
			Message: fmt.Sprintf("A donor wants to co-host %q.", event.Title),
			Type:    notifEntity.TypeCollab,
			Data:    notifEntity.JSONB{"event_id": eventID.String(), "request_id": request.ID.String()},
		})
	}
	return &dto.CreateCollabResponse{Request: request, Existed: existed}, nil
}

// ListForOrganizer returns all requests against the organizer's events,
// newest first.
func (s *CollabService) ListForOrganizer(ctx context.Context, organizerID uuid.UUID) ([]entity.CollabRequestDetail, error) {
	requests, err := s.repo.ListByOrganizer(ctx, organizerID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to list collab requests", err)
	}
	return requests, nil
}

// Decide resolves a pending request. Only the event creator may decide, and a
// request can only be decided once.
func (s *CollabService) Decide(ctx context.Context, id, deciderID uuid.UUID, req *dto.DecideCollabRequest) (*entity.CollabRequest, error) {
	detail, err := s.repo.GetDetail(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load collab request", err)
	}
	if detail == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "collab request not found", nil)
	}
	if detail.EventCreatorID != deciderID {
		return nil, errors.NewAppError(errors.ErrForbidden, "only the event creator can decide this request", nil)
	}
	if detail.Status.Decided() {
		return nil, errors.NewAppError(errors.ErrConflict, "collab request has already been decided", nil)
	}

	status := entity.CollabStatus(req.Status)
	decided, err := s.repo.DecidePending(ctx, id, status, deciderID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to decide collab request", err)
	}
	if decided == nil {
		return nil, errors.NewAppError(errors.ErrConflict, "collab request has already been decided", nil)
	}

	if s.notifier != nil {
		s.notifier.Notify(ctx, &notifDto.CreateNotificationRequest{
			UserID:  decided.DonorID,
			Title:   "Collaboration request " + string(status),
			Message: fmt.Sprintf("Your request to co-host %q was %s.", detail.EventTitle, status),
			Type:    notifEntity.TypeCollab,
			Data:    notifEntity.JSONB{"event_id": decided.EventID.String(), "request_id": decided.ID.String()},
		})
	}
	return decided, nil
}
