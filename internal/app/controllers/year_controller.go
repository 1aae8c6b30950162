package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coursehub/coursehub/internal/app/models"
	"github.com/coursehub/coursehub/internal/app/models/dto"
	"github.com/coursehub/coursehub/internal/app/services"
	"github.com/coursehub/coursehub/internal/middleware"
)

// YearController handles year routes and the semesters nested under a year
type YearController struct {
	yearService     services.YearService
	semesterService services.SemesterService
}

// NewYearController creates a new YearController
func NewYearController(yearService services.YearService, semesterService services.SemesterService) *YearController {
	return &YearController{
		yearService:     yearService,
		semesterService: semesterService,
	}
}

// GetYear returns one year
// @Summary Get a year
// @Tags years
// @Produce json
// @Param id path int true "Year ID"
// @Success 200 {object} models.Year
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /years/{id} [get]
func (c *YearController) GetYear(ctx *gin.Context) {
	id, ok := idParam(ctx, "Invalid year ID")
	if !ok {
		return
	}

	year, err := c.yearService.GetYear(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, year)
}

// UpdateYear replaces year_number and name
// @Summary Update a year
// @Tags years
// @Accept json
// @Produce json
// @Param id path int true "Year ID"
// @Param request body dto.YearRequest true "Year"
// @Success 200 {object} models.Year
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /years/{id} [put]
func (c *YearController) UpdateYear(ctx *gin.Context) {
	id, ok := idParam(ctx, "Invalid year ID")
	if !ok {
		return
	}
	var req dto.YearRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	year, err := c.yearService.UpdateYear(ctx.Request.Context(), &models.Year{
		ID:         id,
		YearNumber: req.YearNumber,
		Name:       req.Name,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, year)
}

// DeleteYear deletes a year
// @Summary Delete a year
// @Tags years
// @Produce json
// @Param id path int true "Year ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /years/{id} [delete]
func (c *YearController) DeleteYear(ctx *gin.Context) {
	id, ok := idParam(ctx, "Invalid year ID")
	if !ok {
		return
	}

	if err := c.yearService.DeleteYear(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// ListSemesters lists the semesters of a year
// @Summary List semesters of a year
// @Tags semesters
// @Produce json
// @Param id path int true "Year ID"
// @Success 200 {array} models.Semester
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /years/{id}/semesters [get]
func (c *YearController) ListSemesters(ctx *gin.Context) {
	yearID, ok := idParam(ctx, "Invalid year ID")
	if !ok {
		return
	}

	semesters, err := c.semesterService.ListSemesters(ctx.Request.Context(), yearID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, semesters)
}

// CreateSemester creates a semester under a year
// @Summary Create a semester
// @Tags semesters
// @Accept json
// @Produce json
// @Param id path int true "Year ID"
// @Param request body dto.SemesterRequest true "Semester"
// @Success 201 {object} models.Semester
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Year not found"
// @Router /years/{id}/semesters [post]
func (c *YearController) CreateSemester(ctx *gin.Context) {
	yearID, ok := idParam(ctx, "Invalid year ID")
	if !ok {
		return
	}
	var req dto.SemesterRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	semester, err := c.semesterService.CreateSemester(ctx.Request.Context(), &models.Semester{
		YearID:         yearID,
		SemesterNumber: req.SemesterNumber,
		Name:           req.Name,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, semester)
}
