package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coursehub/coursehub/internal/app/models"
	"github.com/coursehub/coursehub/internal/app/models/dto"
	"github.com/coursehub/coursehub/internal/app/services"
	"github.com/coursehub/coursehub/internal/middleware"
	"github.com/coursehub/coursehub/internal/pkg/helpers"
)

// CourseController handles course routes and the years nested under a course
type CourseController struct {
	courseService services.CourseService
	yearService   services.YearService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService, yearService services.YearService) *CourseController {
	return &CourseController{
		courseService: courseService,
		yearService:   yearService,
	}
}

// ListCourses lists courses
// @Summary List courses
// @Description Returns all courses ordered by name, optionally filtered by a search term
// @Tags courses
// @Produce json
// @Param search query string false "Matches name or description"
// @Param limit query int false "Maximum number of courses"
// @Param offset query int false "Number of courses to skip"
// @Success 200 {array} models.Course
// @Failure 500 {object} dto.ErrorResponse
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.courseService.ListCourses(ctx.Request.Context(), helpers.ParseListOptions(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, courses)
}

// CreateCourse handles course creation
// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Param request body dto.CourseRequest true "Course"
// @Success 201 {object} models.Course
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.courseService.CreateCourse(ctx.Request.Context(), &models.Course{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, course)
}

// GetCourse returns one course
// @Summary Get a course
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} models.Course
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, ok := idParam(ctx, "Invalid course ID")
	if !ok {
		return
	}

	course, err := c.courseService.GetCourse(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, course)
}

// UpdateCourse replaces a course's fields
// @Summary Update a course
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param request body dto.CourseRequest true "Course"
// @Success 200 {object} models.Course
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := idParam(ctx, "Invalid course ID")
	if !ok {
		return
	}
	var req dto.CourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.courseService.UpdateCourse(ctx.Request.Context(), &models.Course{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, course)
}

// DeleteCourse deletes a course and everything below it
// @Summary Delete a course
// @Description Cascades to years, semesters, units, documents and their files
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := idParam(ctx, "Invalid course ID")
	if !ok {
		return
	}

	if err := c.courseService.DeleteCourse(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// ListYears lists the years of a course
// @Summary List years of a course
// @Tags years
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {array} models.Year
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id}/years [get]
func (c *CourseController) ListYears(ctx *gin.Context) {
	courseID, ok := idParam(ctx, "Invalid course ID")
	if !ok {
		return
	}

	years, err := c.yearService.ListYears(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, years)
}

// CreateYear creates a year under a course
// @Summary Create a year
// @Tags years
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param request body dto.YearRequest true "Year"
// @Success 201 {object} models.Year
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id}/years [post]
func (c *CourseController) CreateYear(ctx *gin.Context) {
	courseID, ok := idParam(ctx, "Invalid course ID")
	if !ok {
		return
	}
	var req dto.YearRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	year, err := c.yearService.CreateYear(ctx.Request.Context(), &models.Year{
		CourseID:   courseID,
		YearNumber: req.YearNumber,
		Name:       req.Name,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, year)
}
