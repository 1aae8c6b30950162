package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coursehub/coursehub/internal/app/models"
	"github.com/coursehub/coursehub/internal/app/models/dto"
	"github.com/coursehub/coursehub/internal/app/services"
	"github.com/coursehub/coursehub/internal/middleware"
)

// SemesterController handles semester routes and the units nested under a semester
type SemesterController struct {
	semesterService services.SemesterService
	unitService     services.UnitService
}

// NewSemesterController creates a new SemesterController
func NewSemesterController(semesterService services.SemesterService, unitService services.UnitService) *SemesterController {
	return &SemesterController{
		semesterService: semesterService,
		unitService:     unitService,
	}
}

// GetSemester returns one semester
// @Summary Get a semester
// @Tags semesters
// @Produce json
// @Param id path int true "Semester ID"
// @Success 200 {object} models.Semester
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /semesters/{id} [get]
func (c *SemesterController) GetSemester(ctx *gin.Context) {
	id, ok := idParam(ctx, "Invalid semester ID")
	if !ok {
		return
	}

	semester, err := c.semesterService.GetSemester(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, semester)
}

// UpdateSemester replaces semester_number and name
// @Summary Update a semester
// @Tags semesters
// @Accept json
// @Produce json
// @Param id path int true "Semester ID"
// @Param request body dto.SemesterRequest true "Semester"
// @Success 200 {object} models.Semester
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /semesters/{id} [put]
func (c *SemesterController) UpdateSemester(ctx *gin.Context) {
	id, ok := idParam(ctx, "Invalid semester ID")
	if !ok {
		return
	}
	var req dto.SemesterRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	semester, err := c.semesterService.UpdateSemester(ctx.Request.Context(), &models.Semester{
		ID:             id,
		SemesterNumber: req.SemesterNumber,
		Name:           req.Name,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, semester)
}

// DeleteSemester deletes a semester
// @Summary Delete a semester
// @Tags semesters
// @Produce json
// @Param id path int true "Semester ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /semesters/{id} [delete]
func (c *SemesterController) DeleteSemester(ctx *gin.Context) {
	id, ok := idParam(ctx, "Invalid semester ID")
	if !ok {
		return
	}

	if err := c.semesterService.DeleteSemester(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// ListUnits lists the units of a semester
// @Summary List units of a semester
// @Tags units
// @Produce json
// @Param id path int true "Semester ID"
// @Success 200 {array} models.Unit
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /semesters/{id}/units [get]
func (c *SemesterController) ListUnits(ctx *gin.Context) {
	semesterID, ok := idParam(ctx, "Invalid semester ID")
	if !ok {
		return
	}

	units, err := c.unitService.ListUnits(ctx.Request.Context(), semesterID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, units)
}

// CreateUnit creates a unit under a semester
// @Summary Create a unit
// @Tags units
// @Accept json
// @Produce json
// @Param id path int true "Semester ID"
// @Param request body dto.UnitRequest true "Unit"
// @Success 201 {object} models.Unit
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Semester not found"
// @Router /semesters/{id}/units [post]
func (c *SemesterController) CreateUnit(ctx *gin.Context) {
	semesterID, ok := idParam(ctx, "Invalid semester ID")
	if !ok {
		return
	}
	var req dto.UnitRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	unit, err := c.unitService.CreateUnit(ctx.Request.Context(), &models.Unit{
		SemesterID:  semesterID,
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, unit)
}
