package controller

import (
	"metra-api/core/controller"
	"metra-api/core/params"
	authController "metra-api/modules/auth/controller"
	"metra-api/modules/notification/dto"
	"metra-api/modules/notification/service"

	"github.com/labstack/echo/v4"
)

type NotificationController struct {
	controller.BaseController
	service *service.NotificationService
}

func NewNotificationController(service *service.NotificationService) *NotificationController {
	return &NotificationController{
		BaseController: controller.NewBaseController(),
		service:        service,
	}
}

// List handles GET /notifications.
func (c *NotificationController) List(ctx echo.Context) error {
	userID, err := authController.GetUserIDFromContext(ctx)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}

	qp := params.FromContext(ctx)
	page, err := c.service.List(ctx.Request().Context(), userID, &qp)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, echo.Map{"notifications": page})
}

// CountUnread handles GET /notifications/unread-count.
func (c *NotificationController) CountUnread(ctx echo.Context) error {
	userID, err := authController.GetUserIDFromContext(ctx)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}

	count, err := c.service.CountUnread(ctx.Request().Context(), userID)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, echo.Map{"unread_count": count})
}

// MarkAsRead handles POST /notifications/mark-read.
func (c *NotificationController) MarkAsRead(ctx echo.Context) error {
	userID, err := authController.GetUserIDFromContext(ctx)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}

	var req dto.MarkReadRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.ErrorResponse(ctx, err)
	}

	if err := c.service.MarkAsRead(ctx.Request().Context(), userID, &req); err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, echo.Map{})
}

// MarkAllAsRead handles POST /notifications/mark-all-read.
func (c *NotificationController) MarkAllAsRead(ctx echo.Context) error {
	userID, err := authController.GetUserIDFromContext(ctx)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}

	if err := c.service.MarkAllAsRead(ctx.Request().Context(), userID); err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, echo.Map{})
}
