package service

import (
	"context"

	coreEntity "metra-api/core/entity"
	"metra-api/core/errors"
	"metra-api/core/logger"
	"metra-api/core/params"
	"metra-api/core/queue"
	"metra-api/modules/notification/dto"
	"metra-api/modules/notification/entity"
	"metra-api/modules/notification/repository"

	"github.com/google/uuid"
)

type NotificationService struct {
	repo  repository.NotificationRepositoryInterface
	queue *queue.Client
}

func NewNotificationService(repo repository.NotificationRepositoryInterface, q *queue.Client) *NotificationService {
	return &NotificationService{repo: repo, queue: q}
}

// Notify stores a notification and schedules its delivery. Delivery failures
// are logged but never fail the caller's operation.
func (s *NotificationService) Notify(ctx context.Context, req *dto.CreateNotificationRequest) {
	notification := &entity.Notification{
		UserID:  req.UserID,
		Title:   req.Title,
		Message: req.Message,
		Type:    req.Type,
		Data:    req.Data,
	}

	created, err := s.repo.Create(ctx, notification)
	if err != nil {
		logger.Error("NotificationService:Notify:Create:Error:", err, "user_id", req.UserID)
		return
	}

	if s.queue == nil {
		return
	}
	err = s.queue.EnqueueNotificationDeliver(queue.DeliverNotificationPayload{
		NotificationID: created.ID.String(),
		UserID:         created.UserID.String(),
		Title:          created.Title,
		Message:        created.Message,
		Type:           created.Type,
	})
	if err != nil {
		logger.Error("NotificationService:Notify:Enqueue:Error:", err, "notification_id", created.ID)
	}
}

// NotifyAll fans one notification out to a set of users.
func (s *NotificationService) NotifyAll(ctx context.Context, userIDs []uuid.UUID, title, message, notifType string, data entity.JSONB) {
	for _, userID := range userIDs {
		s.Notify(ctx, &dto.CreateNotificationRequest{
			UserID:  userID,
			Title:   title,
			Message: message,
			Type:    notifType,
			Data:    data,
		})
	}
}

func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, qp *params.QueryParams) (*coreEntity.Pagination[entity.Notification], error) {
	page, err := s.repo.GetByUserID(ctx, userID, qp)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to list notifications", err)
	}
	return page, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, userID uuid.UUID, req *dto.MarkReadRequest) error {
	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return errors.NewAppError(errors.ErrInvalidInput, "invalid notification id", err)
		}
		ids = append(ids, id)
	}

	if err := s.repo.MarkAsRead(ctx, userID, ids); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "failed to mark notifications as read", err)
	}
	return nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.MarkAllAsRead(ctx, userID); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "failed to mark notifications as read", err)
	}
	return nil
}

func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, errors.NewAppError(errors.ErrGetFailed, "failed to count unread notifications", err)
	}
	return count, nil
}
