package repository

import (
	"context"

	"metra-api/core/database"
	"metra-api/core/entity"
	"metra-api/core/logger"
	"metra-api/core/params"
	notifEntity "metra-api/modules/notification/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type NotificationRepositoryInterface interface {
	Create(ctx context.Context, notification *notifEntity.Notification) (*notifEntity.Notification, error)
	GetByUserID(ctx context.Context, userID uuid.UUID, qp *params.QueryParams) (*entity.Pagination[notifEntity.Notification], error)
	MarkAsRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
}

type NotificationRepository struct {
	db database.IDatabase
}

func NewNotificationRepository(db database.IDatabase) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *notifEntity.Notification) (*notifEntity.Notification, error) {
	query := `
		INSERT INTO notifications (user_id, title, message, type, data)
		VALUES (:user_id, :title, :message, :type, :data)
		RETURNING id, user_id, title, message, type, data, is_read, created_at
	`

	rows, err := r.db.NamedQueryContext(ctx, query, notification)
	if err != nil {
		logger.Error("NotificationRepository:Create:Error:", err)
		return nil, err
	}
	defer rows.Close()

	var created notifEntity.Notification
	if rows.Next() {
		if err := rows.StructScan(&created); err != nil {
			logger.Error("NotificationRepository:Create:Scan:Error:", err)
			return nil, err
		}
	}
	return &created, nil
}

func (r *NotificationRepository) GetByUserID(ctx context.Context, userID uuid.UUID, qp *params.QueryParams) (*entity.Pagination[notifEntity.Notification], error) {
	var total int
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1`, userID); err != nil {
		logger.Error("NotificationRepository:GetByUserID:Count:Error:", err)
		return nil, err
	}

	query := `
		SELECT id, user_id, title, message, type, data, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	offset := (qp.PageNumber - 1) * qp.PageSize
	items := []notifEntity.Notification{}
	if err := r.db.SelectContext(ctx, &items, query, userID, qp.PageSize, offset); err != nil {
		logger.Error("NotificationRepository:GetByUserID:Error:", err)
		return nil, err
	}

	return &entity.Pagination[notifEntity.Notification]{
		Items:      items,
		TotalItems: total,
		PageNumber: qp.PageNumber,
		PageSize:   qp.PageSize,
	}, nil
}

func (r *NotificationRepository) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	query, args, err := sqlx.In(
		`UPDATE notifications SET is_read = TRUE WHERE user_id = ? AND id IN (?)`, userID, ids)
	if err != nil {
		return err
	}
	query = r.db.SQLx().Rebind(query)
	if err := r.db.ExecContext(ctx, query, args...); err != nil {
		logger.Error("NotificationRepository:MarkAsRead:Error:", err)
		return err
	}
	return nil
}

func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`, userID)
	if err != nil {
		logger.Error("NotificationRepository:MarkAllAsRead:Error:", err)
		return err
	}
	return nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`, userID)
	if err != nil {
		logger.Error("NotificationRepository:CountUnread:Error:", err)
		return 0, err
	}
	return count, nil
}
