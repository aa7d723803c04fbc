package auth

import (
	"metra-api/core/cache"
	"metra-api/core/database"
	"metra-api/core/middleware"
	"metra-api/modules/auth/controller"
	"metra-api/modules/auth/repository"
	"metra-api/modules/auth/router"
	"metra-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

// Init wires the auth module and returns the profile repository for modules
// that need profile lookups.
func Init(g *echo.Group, db database.IDatabase, mw *middleware.Middleware, c *cache.Cache) *repository.ProfileRepository {
	repo := repository.NewProfileRepository(db)
	svc := service.NewAuthService(repo, c)
	ctrl := controller.NewAuthController(svc)
	r := router.NewAuthRouter(ctrl)

	r.Register(g, mw)
	return repo
}
