package router

import (
	"metra-api/core/middleware"
	"metra-api/modules/poll/controller"

	"github.com/labstack/echo/v4"
)

type PollRouter struct {
	controller *controller.PollController
}

func NewPollRouter(controller *controller.PollController) *PollRouter {
	return &PollRouter{controller: controller}
}

func (r *PollRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	events := g.Group("/events")

	events.GET("/:id/poll", r.controller.Tally)
	events.POST("/:id/votes", r.controller.Cast, mw.AuthMiddleware())
}
