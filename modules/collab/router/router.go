package router

import (
	"metra-api/core/middleware"
	"metra-api/modules/collab/controller"

	"github.com/labstack/echo/v4"
)

type CollabRouter struct {
	controller *controller.CollabController
}

func NewCollabRouter(controller *controller.CollabController) *CollabRouter {
	return &CollabRouter{controller: controller}
}

func (r *CollabRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	g.POST("/events/:id/collab-requests", r.controller.Create, mw.AuthMiddleware())

	requests := g.Group("/collab-requests", mw.AuthMiddleware())
	requests.GET("", r.controller.List)
	requests.PATCH("/:id", r.controller.Decide)
}
