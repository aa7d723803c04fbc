package controller

import (
	"net/http"

	"metra-api/core/errors"
	"metra-api/core/logger"

	"github.com/labstack/echo/v4"
)

// BaseController renders the {ok: boolean, ...} envelope every endpoint uses.
type BaseController interface {
	OK(c echo.Context, payload echo.Map) error
	BadRequest(c echo.Context, message string) error
	ErrorResponse(c echo.Context, err error) error
}

type responseHandler struct{}

func NewBaseController() BaseController {
	return &responseHandler{}
}

// OK writes a 200 success envelope; payload keys are merged next to "ok".
func (h *responseHandler) OK(c echo.Context, payload echo.Map) error {
	body := echo.Map{"ok": true}
	for k, v := range payload {
		body[k] = v
	}
	return c.JSON(http.StatusOK, body)
}

func (h *responseHandler) BadRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "error": message})
}

// ErrorResponse translates an error into the failure envelope. AppError codes
// pick the status; anything else is a 500 with the message surfaced.
func (h *responseHandler) ErrorResponse(c echo.Context, err error) error {
	httpStatus := http.StatusInternalServerError
	appCode := errors.ErrInternalServer
	msg := "internal server error"

	if err != nil {
		msg = err.Error()
		if ae, ok := err.(*errors.AppError); ok && ae != nil {
			appCode = ae.Code
			if ae.Message != "" {
				msg = ae.Message
			}
			httpStatus = statusForCode(appCode)
		}
	}

	logger.Error("BaseController:ErrorResponse",
		"status", httpStatus,
		"code", appCode,
		"message", msg,
	)
	return c.JSON(httpStatus, echo.Map{"ok": false, "error": msg})
}

func statusForCode(code errors.ErrorCode) int {
	switch code {
	case errors.ErrInvalidInput, errors.ErrInvalidRequestData:
		return http.StatusBadRequest
	case errors.ErrUnauthorized, errors.ErrTokenExpired, errors.ErrInvalidTokenFormat, errors.ErrMissingAuthorizationHeader:
		return http.StatusUnauthorized
	case errors.ErrForbidden:
		return http.StatusForbidden
	case errors.ErrNotFound:
		return http.StatusNotFound
	case errors.ErrAlreadyExists, errors.ErrCapacityReached, errors.ErrConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
