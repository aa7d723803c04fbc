package poll

import (
	"metra-api/core/database"
	"metra-api/core/middleware"
	eventRepository "metra-api/modules/event/repository"
	"metra-api/modules/poll/controller"
	"metra-api/modules/poll/repository"
	"metra-api/modules/poll/router"
	"metra-api/modules/poll/service"

	"github.com/labstack/echo/v4"
)

func Init(g *echo.Group, db database.IDatabase, mw *middleware.Middleware, events eventRepository.EventRepositoryInterface, notifier service.Notifier) {
	repo := repository.NewPollRepository(db)
	svc := service.NewPollService(repo, events, notifier)
	ctrl := controller.NewPollController(svc)
	r := router.NewPollRouter(ctrl)

	r.Register(g, mw)
}
