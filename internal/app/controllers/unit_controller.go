package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coursehub/coursehub/internal/app/models"
	"github.com/coursehub/coursehub/internal/app/models/dto"
	"github.com/coursehub/coursehub/internal/app/services"
	"github.com/coursehub/coursehub/internal/middleware"
)

// UnitController handles unit routes and the documents attached to a unit
type UnitController struct {
	unitService     services.UnitService
	documentService services.DocumentService
}

// NewUnitController creates a new UnitController
func NewUnitController(unitService services.UnitService, documentService services.DocumentService) *UnitController {
	return &UnitController{
		unitService:     unitService,
		documentService: documentService,
	}
}

// GetUnit returns one unit
// @Summary Get a unit
// @Tags units
// @Produce json
// @Param id path int true "Unit ID"
// @Success 200 {object} models.Unit
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /units/{id} [get]
func (c *UnitController) GetUnit(ctx *gin.Context) {
	id, ok := idParam(ctx, "Invalid unit ID")
	if !ok {
		return
	}

	unit, err := c.unitService.GetUnit(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, unit)
}

// UpdateUnit replaces code, name and description
// @Summary Update a unit
// @Tags units
// @Accept json
// @Produce json
// @Param id path int true "Unit ID"
// @Param request body dto.UnitRequest true "Unit"
// @Success 200 {object} models.Unit
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /units/{id} [put]
func (c *UnitController) UpdateUnit(ctx *gin.Context) {
	id, ok := idParam(ctx, "Invalid unit ID")
	if !ok {
		return
	}
	var req dto.UnitRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	unit, err := c.unitService.UpdateUnit(ctx.Request.Context(), &models.Unit{
		ID:          id,
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, unit)
}

// DeleteUnit deletes a unit
// @Summary Delete a unit
// @Description Removes the unit, its documents and its upload directory
// @Tags units
// @Produce json
// @Param id path int true "Unit ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /units/{id} [delete]
func (c *UnitController) DeleteUnit(ctx *gin.Context) {
	id, ok := idParam(ctx, "Invalid unit ID")
	if !ok {
		return
	}

	if err := c.unitService.DeleteUnit(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// ListDocuments lists a unit's documents, newest first
// @Summary List documents of a unit
// @Tags documents
// @Produce json
// @Param id path int true "Unit ID"
// @Success 200 {array} models.Document
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /units/{id}/documents [get]
func (c *UnitController) ListDocuments(ctx *gin.Context) {
	unitID, ok := idParam(ctx, "Invalid unit ID")
	if !ok {
		return
	}

	docs, err := c.documentService.ListUnitDocuments(ctx.Request.Context(), unitID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, docs)
}
