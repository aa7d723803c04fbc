package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"metra-api/core/logger"
	"metra-api/core/queue"
	"metra-api/core/utils"
	"metra-api/modules/auth/repository"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Worker delivers stored notifications out of band. Users with an email on
// their profile get an email; everyone else only sees the in-app entry.
type Worker struct {
	profiles repository.ProfileRepositoryInterface
}

func NewWorker(profiles repository.ProfileRepositoryInterface) *Worker {
	return &Worker{profiles: profiles}
}

// Register attaches the worker's handlers to the task mux.
func (w *Worker) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(queue.TaskNotificationDeliver, w.HandleDeliver)
}

func (w *Worker) HandleDeliver(ctx context.Context, task *asynq.Task) error {
	var payload queue.DeliverNotificationPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("notification:deliver: bad payload: %w", err)
	}

	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		return fmt.Errorf("notification:deliver: bad user id: %w", err)
	}

	profile, err := w.profiles.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if profile == nil || profile.Email == nil || !utils.IsValidEmail(*profile.Email) {
		logger.Debug("NotificationWorker:HandleDeliver:NoEmail", "user_id", payload.UserID)
		return nil
	}

	err = utils.SendEmail(utils.EmailMessage{
		To:      []string{*profile.Email},
		Subject: payload.Title,
		Body:    payload.Message,
	})
	if err != nil {
		logger.Warn("NotificationWorker:HandleDeliver:Email:Error:", err, "user_id", payload.UserID)
		// Email is best effort; do not retry the task for relay trouble.
		return nil
	}

	logger.Info("NotificationWorker:HandleDeliver:Sent", "user_id", payload.UserID, "type", payload.Type)
	return nil
}
