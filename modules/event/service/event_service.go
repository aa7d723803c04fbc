package service

import (
	"context"
	"fmt"

	"metra-api/core/constants"
	"metra-api/core/errors"
	"metra-api/core/utils"
	"metra-api/modules/event/dto"
	"metra-api/modules/event/entity"
	"metra-api/modules/event/repository"
	notifDto "metra-api/modules/notification/dto"
	notifEntity "metra-api/modules/notification/entity"
	siteEntity "metra-api/modules/site/entity"
	siteRepository "metra-api/modules/site/repository"

	"github.com/google/uuid"
)

// Notifier is the slice of the notification service the event flow needs.
type Notifier interface {
	Notify(ctx context.Context, req *notifDto.CreateNotificationRequest)
	NotifyAll(ctx context.Context, userIDs []uuid.UUID, title, message, notifType string, data notifEntity.JSONB)
}

type EventService struct {
	repo     repository.EventRepositoryInterface
	sites    siteRepository.SiteRepositoryInterface
	notifier Notifier
}

func NewEventService(repo repository.EventRepositoryInterface, sites siteRepository.SiteRepositoryInterface, notifier Notifier) *EventService {
	return &EventService{repo: repo, sites: sites, notifier: notifier}
}

// Create stores a new open event together with its candidate times, candidate
// sites and requested items. An inline new site is created first and added to
// the site options.
func (s *EventService) Create(ctx context.Context, creatorID uuid.UUID, req *dto.CreateEventRequest) (*entity.EventDetail, error) {
	siteOptionIDs := make([]uuid.UUID, 0, len(req.SiteOptions)+1)
	for _, raw := range req.SiteOptions {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid site option id", err)
		}
		siteOptionIDs = append(siteOptionIDs, id)
	}

	if req.NewSite != nil {
		site, err := s.sites.Create(ctx, &siteEntity.Site{
			Name:       req.NewSite.Name,
			Address:    req.NewSite.Address,
			PostalCode: req.NewSite.PostalCode,
			Lat:        req.NewSite.Lat,
			Lng:        req.NewSite.Lng,
		})
		if err != nil {
			return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to create site for event", err)
		}
		siteOptionIDs = append(siteOptionIDs, site.ID)
	}

	items := make([]entity.EventItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, entity.EventItem{
			CategoryID: item.CategoryID,
			TargetQty:  item.TargetQty,
		})
	}

	event := &entity.Event{
		CreatorID:   creatorID,
		Title:       req.Title,
		Slug:        utils.GenerateSlug(req.Title),
		Description: req.Description,
		Capacity:    req.Capacity,
		Status:      entity.EventStatusOpen,
	}

	created, err := s.repo.Create(ctx, event, items, req.TimeOptions, siteOptionIDs)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to create event", err)
	}
	return s.Get(ctx, created.ID)
}

func (s *EventService) Get(ctx context.Context, id uuid.UUID) (*entity.EventDetail, error) {
	detail, err := s.repo.GetDetail(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load event", err)
	}
	if detail == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}
	return detail, nil
}

func (s *EventService) List(ctx context.Context) ([]entity.EventDetail, error) {
	events, err := s.repo.List(ctx, constants.DefaultListLimit)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to list events", err)
	}
	return events, nil
}

func (s *EventService) ListMine(ctx context.Context, creatorID uuid.UUID) ([]entity.EventDetail, error) {
	events, err := s.repo.ListByCreator(ctx, creatorID, constants.DefaultListLimit)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to list events", err)
	}
	return events, nil
}

// Update applies a partial update. Only the creator may change an event, and
// status changes follow the open -> finalized -> completed machine. Moving to
// finalized requires a final time and site chosen from the event's options.
func (s *EventService) Update(ctx context.Context, id, userID uuid.UUID, req *dto.UpdateEventRequest) (*entity.EventDetail, error) {
	if req.Empty() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "no fields to update", nil)
	}

	detail, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail.CreatorID != userID {
		return nil, errors.NewAppError(errors.ErrForbidden, "only the event creator can update the event", nil)
	}

	event := detail.Event
	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = req.Description
	}
	if req.Capacity != nil {
		event.Capacity = req.Capacity
	}
	if req.FinalTime != nil {
		event.FinalTime = req.FinalTime
	}
	if req.FinalSiteID != nil {
		siteID, err := uuid.Parse(*req.FinalSiteID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid final site id", err)
		}
		event.FinalSiteID = &siteID
	}

	finalizing := false
	if req.Status != nil {
		next := entity.EventStatus(*req.Status)
		if next != event.Status {
			if !detail.Status.CanTransitionTo(next) {
				return nil, errors.NewAppError(errors.ErrConflict,
					fmt.Sprintf("cannot change event status from %s to %s", detail.Status, next), nil)
			}
			finalizing = next == entity.EventStatusFinalized
			event.Status = next
		}
	}

	// A finalized event must always point at one of its own options, whether
	// this patch is the finalize itself or a later edit of the final fields.
	if event.Status == entity.EventStatusFinalized {
		if event.FinalTime == nil || !detail.HasTimeOption(*event.FinalTime) {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "final time must be one of the event's time options", nil)
		}
		if event.FinalSiteID == nil || !detail.HasSiteOption(*event.FinalSiteID) {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "final site must be one of the event's site options", nil)
		}
	}

	if err := s.repo.Update(ctx, &event); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to update event", err)
	}

	if finalizing && s.notifier != nil {
		userIDs, err := s.repo.ListRsvpUserIDs(ctx, id)
		if err == nil {
			s.notifier.NotifyAll(ctx, userIDs,
				"Event finalized",
				fmt.Sprintf("%q now has a confirmed time and place.", event.Title),
				notifEntity.TypeFinalized,
				notifEntity.JSONB{"event_id": id.String()})
		}
	}

	return s.Get(ctx, id)
}

// Delete removes an event and everything attached to it. Creator only.
func (s *EventService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	detail, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if detail.CreatorID != userID {
		return errors.NewAppError(errors.ErrForbidden, "only the event creator can delete the event", nil)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "failed to delete event", err)
	}
	return nil
}

func (s *EventService) ListRsvps(ctx context.Context, eventID uuid.UUID) ([]entity.EventRsvp, error) {
	if _, err := s.Get(ctx, eventID); err != nil {
		return nil, err
	}
	rsvps, err := s.repo.ListRsvps(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to list rsvps", err)
	}
	if rsvps == nil {
		rsvps = []entity.EventRsvp{}
	}
	return rsvps, nil
}

// ToggleRsvp joins the user to the event, or removes them if already joined.
// Joining never exceeds the event capacity, even under concurrent toggles.
func (s *EventService) ToggleRsvp(ctx context.Context, eventID, userID uuid.UUID) (string, error) {
	detail, err := s.Get(ctx, eventID)
	if err != nil {
		return "", err
	}

	removed, err := s.repo.DeleteRsvp(ctx, eventID, userID)
	if err != nil {
		return "", errors.NewAppError(errors.ErrDeleteFailed, "failed to update rsvp", err)
	}
	if removed {
		return "removed", nil
	}

	rsvp, err := s.repo.InsertRsvpIfCapacity(ctx, eventID, userID)
	if err != nil {
		if err == repository.ErrDuplicateRsvp {
			// Lost a race with another toggle from the same user.
			return "joined", nil
		}
		return "", errors.NewAppError(errors.ErrCreateFailed, "failed to update rsvp", err)
	}
	if rsvp == nil {
		return "", errors.NewAppError(errors.ErrCapacityReached, "event is at capacity", nil)
	}

	if s.notifier != nil && detail.CreatorID != userID {
		s.notifier.Notify(ctx, &notifDto.CreateNotificationRequest{
			UserID:  detail.CreatorID,
			Title:   "New RSVP",
			Message: fmt.Sprintf("Someone joined %q.", detail.Title),
			Type:    notifEntity.TypeRsvp,
			Data:    notifEntity.JSONB{"event_id": eventID.String()},
		})
	}
	return "joined", nil
}
