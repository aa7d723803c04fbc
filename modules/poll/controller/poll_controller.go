package controller

import (
	"metra-api/core/controller"
	"metra-api/core/errors"
	authController "metra-api/modules/auth/controller"
	"metra-api/modules/poll/dto"
	"metra-api/modules/poll/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type PollController struct {
	controller.BaseController
	service *service.PollService
}

func NewPollController(service *service.PollService) *PollController {
	return &PollController{
		BaseController: controller.NewBaseController(),
		service:        service,
	}
}

// Tally handles GET /events/:id/poll.
func (c *PollController) Tally(ctx echo.Context) error {
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.ErrorResponse(ctx, errors.NewAppError(errors.ErrInvalidRequestData, "invalid event id", err))
	}

	tally, err := c.service.Tally(ctx.Request().Context(), eventID)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, echo.Map{"poll": tally})
}

// Cast handles POST /events/:id/votes.
func (c *PollController) Cast(ctx echo.Context) error {
	userID, err := authController.GetUserIDFromContext(ctx)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.ErrorResponse(ctx, errors.NewAppError(errors.ErrInvalidRequestData, "invalid event id", err))
	}

	var req dto.CastVoteRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.ErrorResponse(ctx, err)
	}

	state, err := c.service.Cast(ctx.Request().Context(), eventID, userID, &req)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, echo.Map{"vote": state})
}
