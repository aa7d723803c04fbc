package controller

import (
	"metra-api/core/controller"
	"metra-api/core/errors"
	"metra-api/modules/site/dto"
	"metra-api/modules/site/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type SiteController struct {
	controller.BaseController
	service *service.SiteService
}

func NewSiteController(service *service.SiteService) *SiteController {
	return &SiteController{
		BaseController: controller.NewBaseController(),
		service:        service,
	}
}

// List handles GET /sites.
func (c *SiteController) List(ctx echo.Context) error {
	sites, err := c.service.List(ctx.Request().Context())
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, echo.Map{"sites": sites})
}

// Create handles POST /sites.
func (c *SiteController) Create(ctx echo.Context) error {
	var req dto.CreateSiteRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.ErrorResponse(ctx, err)
	}

	site, err := c.service.Create(ctx.Request().Context(), &req)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, echo.Map{"site": site})
}

// Update handles PATCH /sites/:id.
func (c *SiteController) Update(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.ErrorResponse(ctx, errors.NewAppError(errors.ErrInvalidRequestData, "invalid site id", err))
	}

	var req dto.UpdateSiteRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(ctx, "invalid request body")
	}

	site, err := c.service.Update(ctx.Request().Context(), id, &req)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, echo.Map{"site": site})
}

// UploadPhoto handles POST /sites/:id/photo with a multipart "photo" file.
func (c *SiteController) UploadPhoto(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.ErrorResponse(ctx, errors.NewAppError(errors.ErrInvalidRequestData, "invalid site id", err))
	}

	fileHeader, err := ctx.FormFile("photo")
	if err != nil {
		return c.BadRequest(ctx, "photo file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.BadRequest(ctx, "failed to read photo file")
	}
	defer file.Close()

	site, err := c.service.UploadPhoto(ctx.Request().Context(), id,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, echo.Map{"site": site})
}

// Delete handles DELETE /sites/:id.
func (c *SiteController) Delete(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.ErrorResponse(ctx, errors.NewAppError(errors.ErrInvalidRequestData, "invalid site id", err))
	}

	if err := c.service.Delete(ctx.Request().Context(), id); err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return c.OK(ctx, echo.Map{})
}
