package controller

import (
	"metra-api/core/controller"
	"metra-api/core/errors"
	authController "metra-api/modules/auth/controller"
	"metra-api/modules/collab/dto"
	"metra-api/modules/collab/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type CollabController struct {
	controller.BaseController
	service *service.CollabService
}

func NewCollabController(service *service.CollabService) *CollabController {
	return &CollabController{
		BaseController: controller.NewBaseController(),
		service:        service,
	}
}

// Create handles POST /events/:id/collab-requests.
func (c *CollabController) Create(ctx echo.Context) error {
	userID, err := authController.GetUserIDFromContext(ctx)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.ErrorResponse(ctx, errors.NewAppError(errors.ErrInvalidRequestData, "invalid event id", err))
	}

	result, err := c.service.Create(ctx.Request().Context(), eventID, userID)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, echo.Map{"collab_request": result.Request, "existed": result.Existed})
}

// List handles GET /collab-requests. Only the authenticated organizer's own
// requests are visible; an organizerId query for someone else is rejected.
func (c *CollabController) List(ctx echo.Context) error {
	userID, err := authController.GetUserIDFromContext(ctx)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}

	if raw := ctx.QueryParam("organizerId"); raw != "" {
		organizerID, err := uuid.Parse(raw)
		if err != nil {
			return c.ErrorResponse(ctx, errors.NewAppError(errors.ErrInvalidRequestData, "invalid organizer id", err))
		}
		if organizerID != userID {
			return c.ErrorResponse(ctx, errors.NewAppError(errors.ErrForbidden, "cannot list another organizer's requests", nil))
		}
	}

	requests, err := c.service.ListForOrganizer(ctx.Request().Context(), userID)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, echo.Map{"collab_requests": requests})
}

// Decide handles PATCH /collab-requests/:id.
func (c *CollabController) Decide(ctx echo.Context) error {
	userID, err := authController.GetUserIDFromContext(ctx)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.ErrorResponse(ctx, errors.NewAppError(errors.ErrInvalidRequestData, "invalid collab request id", err))
	}

	var req dto.DecideCollabRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.ErrorResponse(ctx, err)
	}

	decided, err := c.service.Decide(ctx.Request().Context(), id, userID, &req)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, echo.Map{"collab_request": decided})
}
