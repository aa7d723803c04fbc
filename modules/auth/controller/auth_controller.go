package controller

import (
	"metra-api/core/config"
	"metra-api/core/constants"
	"metra-api/core/controller"
	"metra-api/core/errors"
	"metra-api/core/logger"
	"metra-api/core/utils"
	"metra-api/modules/auth/dto"
	"metra-api/modules/auth/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type AuthController struct {
	controller.BaseController
	service *service.AuthService
}

func NewAuthController(service *service.AuthService) *AuthController {
	return &AuthController{
		BaseController: controller.NewBaseController(),
		service:        service,
	}
}

// GetUserIDFromContext retrieves the authenticated user id set by the auth middleware.
func GetUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	if tokenData == nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "token data not found in context", nil)
	}
	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "invalid token data format", nil)
	}
	return claims.UserID, nil
}

// GoogleLogin handles POST /auth/google/login.
func (c *AuthController) GoogleLogin(ctx echo.Context) error {
	var req dto.GoogleLoginRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.ErrorResponse(ctx, err)
	}

	session, err := c.service.GoogleLogin(ctx.Request().Context(), req.Code)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, echo.Map{"session": session})
}

// SyncProfile handles POST /auth/sync-profile, a server-to-server call from
// the auth provider guarded by a shared secret.
func (c *AuthController) SyncProfile(ctx echo.Context) error {
	cfg, ok := config.GetSafe()
	if !ok || cfg.SyncSecretHash == "" {
		logger.Error("AuthController:SyncProfile:SyncSecretNotConfigured")
		return c.ErrorResponse(ctx, errors.NewAppError(errors.ErrInternalServer, "sync secret not configured", nil))
	}
	secret := ctx.Request().Header.Get("X-Sync-Secret")
	if secret == "" || !utils.CompareSecret(cfg.SyncSecretHash, secret) {
		return c.ErrorResponse(ctx, errors.NewAppError(errors.ErrUnauthorized, "invalid sync secret", nil))
	}

	var req dto.SyncProfileRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.ErrorResponse(ctx, err)
	}

	logger.Info("AuthController:SyncProfile", "auth_id", req.AuthID)
	profile, err := c.service.SyncProfile(ctx.Request().Context(), &req)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, echo.Map{"profile": dto.ToProfileResponse(profile)})
}

// Logout handles POST /auth/logout.
func (c *AuthController) Logout(ctx echo.Context) error {
	token, appErr := utils.GetTokenFromHeader(ctx)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	if err := c.service.Logout(ctx.Request().Context(), token); err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, echo.Map{})
}

// GetMe handles GET /profiles/me.
func (c *AuthController) GetMe(ctx echo.Context) error {
	userID, err := GetUserIDFromContext(ctx)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}

	profile, err := c.service.GetProfile(ctx.Request().Context(), userID)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, echo.Map{"profile": dto.ToProfileResponse(profile)})
}

// UpdateMe handles PATCH /profiles/me.
func (c *AuthController) UpdateMe(ctx echo.Context) error {
	userID, err := GetUserIDFromContext(ctx)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}

	var req dto.UpdateProfileRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.ErrorResponse(ctx, err)
	}

	profile, err := c.service.UpdateProfile(ctx.Request().Context(), userID, &req)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, echo.Map{"profile": dto.ToProfileResponse(profile)})
}
