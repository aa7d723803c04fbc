package notification

import (
	"metra-api/core/database"
	"metra-api/core/middleware"
	"metra-api/core/queue"
	authRepository "metra-api/modules/auth/repository"
	"metra-api/modules/notification/controller"
	"metra-api/modules/notification/repository"
	"metra-api/modules/notification/router"
	"metra-api/modules/notification/service"
	"metra-api/modules/notification/worker"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
)

// Init wires the notification module. It returns the service so other modules
// can emit notifications, and registers the delivery handler on the task mux.
func Init(g *echo.Group, db database.IDatabase, mw *middleware.Middleware, q *queue.Client, mux *asynq.ServeMux, profiles authRepository.ProfileRepositoryInterface) *service.NotificationService {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo, q)
	ctrl := controller.NewNotificationController(svc)
	r := router.NewNotificationRouter(ctrl)

	r.Register(g, mw)
	if mux != nil {
		worker.NewWorker(profiles).Register(mux)
	}
	return svc
}
