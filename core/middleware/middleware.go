package middleware

import (
	"net/http"

	"metra-api/core/cache"
	"metra-api/core/constants"
	"metra-api/core/logger"
	"metra-api/core/utils"

	"github.com/labstack/echo/v4"
)

// Middleware bundles the request middlewares that need shared dependencies.
type Middleware struct {
	cache *cache.Cache
}

func NewMiddleware(c *cache.Cache) *Middleware {
	return &Middleware{cache: c}
}

// AuthMiddleware validates the bearer token and stores its claims in context.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, appErr := utils.GetTokenFromHeader(c)
			if appErr != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"ok": false, "error": appErr.Message})
			}

			if m.cache != nil {
				blacklisted, err := m.cache.IsTokenBlacklisted(c.Request().Context(), token)
				if err != nil {
					logger.Error("Middleware:AuthMiddleware:IsTokenBlacklisted:Error:", err)
				} else if blacklisted {
					return c.JSON(http.StatusUnauthorized, echo.Map{"ok": false, "error": "token is revoked"})
				}
			}

			claims, err := utils.ValidateAndParseToken(token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"ok": false, "error": "invalid or expired token"})
			}
			if claims.Scope != constants.ScopeTokenAccess {
				return c.JSON(http.StatusUnauthorized, echo.Map{"ok": false, "error": "token scope not allowed"})
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}

// RequestID assigns a short id to every request for log correlation.
func (m *Middleware) RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = utils.GenerateID()
			}
			c.Set(constants.ContextRequestID, id)
			c.Response().Header().Set(echo.HeaderXRequestID, id)
			return next(c)
		}
	}
}
