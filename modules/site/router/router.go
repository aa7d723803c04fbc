package router

import (
	"metra-api/core/middleware"
	"metra-api/modules/site/controller"

	"github.com/labstack/echo/v4"
)

type SiteRouter struct {
	controller *controller.SiteController
}

func NewSiteRouter(controller *controller.SiteController) *SiteRouter {
	return &SiteRouter{controller: controller}
}

func (r *SiteRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	sites := g.Group("/sites")

	sites.GET("", r.controller.List)
	sites.POST("", r.controller.Create, mw.AuthMiddleware())
	sites.PATCH("/:id", r.controller.Update, mw.AuthMiddleware())
	sites.POST("/:id/photo", r.controller.UploadPhoto, mw.AuthMiddleware())
	sites.DELETE("/:id", r.controller.Delete, mw.AuthMiddleware())
}
