package router

import (
	"metra-api/core/middleware"
	"metra-api/modules/notification/controller"

	"github.com/labstack/echo/v4"
)

type NotificationRouter struct {
	controller *controller.NotificationController
}

func NewNotificationRouter(controller *controller.NotificationController) *NotificationRouter {
	return &NotificationRouter{controller: controller}
}

func (r *NotificationRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	notifications := g.Group("/notifications", mw.AuthMiddleware())

	notifications.GET("", r.controller.List)
	notifications.GET("/unread-count", r.controller.CountUnread)
	notifications.POST("/mark-read", r.controller.MarkAsRead)
	notifications.POST("/mark-all-read", r.controller.MarkAllAsRead)
}
