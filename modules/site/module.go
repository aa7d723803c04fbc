package site

import (
	"metra-api/core/database"
	"metra-api/core/middleware"
	"metra-api/core/storage"
	"metra-api/modules/site/controller"
	"metra-api/modules/site/repository"
	"metra-api/modules/site/router"
	"metra-api/modules/site/service"

	"github.com/labstack/echo/v4"
)

// Init wires the site module and returns the repository for the event module,
// which validates site options and auto-creates sites on event create. A nil
// store leaves photo uploads disabled.
func Init(g *echo.Group, db database.IDatabase, mw *middleware.Middleware, store *storage.Storage) *repository.SiteRepository {
	repo := repository.NewSiteRepository(db)
	var uploader service.Uploader
	if store != nil {
		uploader = store
	}
	svc := service.NewSiteService(repo, uploader)
	ctrl := controller.NewSiteController(svc)
	r := router.NewSiteRouter(ctrl)

	r.Register(g, mw)
	return repo
}
