package controller

import (
	"metra-api/core/controller"
	"metra-api/core/errors"
	authController "metra-api/modules/auth/controller"
	"metra-api/modules/event/dto"
	"metra-api/modules/event/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type EventController struct {
	controller.BaseController
	service *service.EventService
}

func NewEventController(service *service.EventService) *EventController {
	return &EventController{
		BaseController: controller.NewBaseController(),
		service:        service,
	}
}

func (c *EventController) eventID(ctx echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return uuid.Nil, errors.NewAppError(errors.ErrInvalidRequestData, "invalid event id", err)
	}
	return id, nil
}

// List handles GET /events.
func (c *EventController) List(ctx echo.Context) error {
	events, err := c.service.List(ctx.Request().Context())
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, echo.Map{"events": events})
}

// ListMine handles GET /events/mine.
func (c *EventController) ListMine(ctx echo.Context) error {
	userID, err := authController.GetUserIDFromContext(ctx)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}

	events, err := c.service.ListMine(ctx.Request().Context(), userID)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, echo.Map{"events": events})
}

// Get handles GET /events/:id.
func (c *EventController) Get(ctx echo.Context) error {
	id, err := c.eventID(ctx)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}

	event, err := c.service.Get(ctx.Request().Context(), id)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, echo.Map{"event": event})
}

// Create handles POST /events.
func (c *EventController) Create(ctx echo.Context) error {
	userID, err := authController.GetUserIDFromContext(ctx)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}

	var req dto.CreateEventRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.ErrorResponse(ctx, err)
	}

	event, err := c.service.Create(ctx.Request().Context(), userID, &req)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, echo.Map{"event": event})
}

// Update handles PATCH /events/:id.
func (c *EventController) Update(ctx echo.Context) error {
	userID, err := authController.GetUserIDFromContext(ctx)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	id, err := c.eventID(ctx)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}

	var req dto.UpdateEventRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.ErrorResponse(ctx, err)
	}

	event, err := c.service.Update(ctx.Request().Context(), id, userID, &req)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, echo.Map{"event": event})
}

// Delete handles DELETE /events/:id.
func (c *EventController) Delete(ctx echo.Context) error {
	userID, err := authController.GetUserIDFromContext(ctx)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	id, err := c.eventID(ctx)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}

	if err := c.service.Delete(ctx.Request().Context(), id, userID); err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, echo.Map{})
}

// ListRsvps handles GET /events/:id/rsvps.
func (c *EventController) ListRsvps(ctx echo.Context) error {
	id, err := c.eventID(ctx)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}

	rsvps, err := c.service.ListRsvps(ctx.Request().Context(), id)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, echo.Map{"rsvps": rsvps})
}

// ToggleRsvp handles POST /events/:id/rsvps.
func (c *EventController) ToggleRsvp(ctx echo.Context) error {
	userID, err := authController.GetUserIDFromContext(ctx)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	id, err := c.eventID(ctx)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}

	state, err := c.service.ToggleRsvp(ctx.Request().Context(), id, userID)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, echo.Map{"rsvp": state})
}
