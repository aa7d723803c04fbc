package event

import (
	"metra-api/core/database"
	"metra-api/core/middleware"
	"metra-api/modules/event/controller"
	"metra-api/modules/event/repository"
	"metra-api/modules/event/router"
	"metra-api/modules/event/service"
	siteRepository "metra-api/modules/site/repository"

	"github.com/labstack/echo/v4"
)

// Init wires the event module and returns the repository for the poll and
// collab modules, which validate events and options against it.
func Init(g *echo.Group, db database.IDatabase, mw *middleware.Middleware, sites siteRepository.SiteRepositoryInterface, notifier service.Notifier) *repository.EventRepository {
	repo := repository.NewEventRepository(db)
	svc := service.NewEventService(repo, sites, notifier)
	ctrl := controller.NewEventController(svc)
	r := router.NewEventRouter(ctrl)

	r.Register(g, mw)
	return repo
}
