package router

import (
	"metra-api/core/middleware"
	"metra-api/modules/event/controller"

	"github.com/labstack/echo/v4"
)

type EventRouter struct {
	controller *controller.EventController
}

func NewEventRouter(controller *controller.EventController) *EventRouter {
	return &EventRouter{controller: controller}
}

func (r *EventRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	events := g.Group("/events")

	events.GET("", r.controller.List)
	events.POST("", r.controller.Create, mw.AuthMiddleware())
	events.GET("/mine", r.controller.ListMine, mw.AuthMiddleware())
	events.GET("/:id", r.controller.Get)
	events.PATCH("/:id", r.controller.Update, mw.AuthMiddleware())
	events.DELETE("/:id", r.controller.Delete, mw.AuthMiddleware())

	events.GET("/:id/rsvps", r.controller.ListRsvps)
	events.POST("/:id/rsvps", r.controller.ToggleRsvp, mw.AuthMiddleware())
}
