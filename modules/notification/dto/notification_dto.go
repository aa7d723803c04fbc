package dto

import (
	"metra-api/modules/notification/entity"

	"github.com/google/uuid"
)

// CreateNotificationRequest is the internal shape other modules use to send
// a notification to a user.
type CreateNotificationRequest struct {
	UserID  uuid.UUID
	Title   string
	Message string
	Type    string
	Data    entity.JSONB
}

type MarkReadRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,uuid"`
}
