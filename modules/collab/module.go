package collab

import (
	"metra-api/core/database"
	"metra-api/core/middleware"
	"metra-api/modules/collab/controller"
	"metra-api/modules/collab/repository"
	"metra-api/modules/collab/router"
	"metra-api/modules/collab/service"
	eventRepository "metra-api/modules/event/repository"

	"github.com/labstack/echo/v4"
)

func Init(g *echo.Group, db database.IDatabase, mw *middleware.Middleware, events eventRepository.EventRepositoryInterface, notifier service.Notifier) {
	repo := repository.NewCollabRepository(db)
	svc := service.NewCollabService(repo, events, notifier)
	ctrl := controller.NewCollabController(svc)
	r := router.NewCollabRouter(ctrl)

	r.Register(g, mw)
}
