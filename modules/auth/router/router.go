package router

import (
	"metra-api/core/middleware"
	"metra-api/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

type AuthRouter struct {
	controller *controller.AuthController
}

func NewAuthRouter(controller *controller.AuthController) *AuthRouter {
	return &AuthRouter{controller: controller}
}

func (r *AuthRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	auth := g.Group("/auth")
	auth.POST("/google/login", r.controller.GoogleLogin)
	auth.POST("/sync-profile", r.controller.SyncProfile)
	auth.POST("/logout", r.controller.Logout, mw.AuthMiddleware())

	profiles := g.Group("/profiles", mw.AuthMiddleware())
	profiles.GET("/me", r.controller.GetMe)
	profiles.PATCH("/me", r.controller.UpdateMe)
}
