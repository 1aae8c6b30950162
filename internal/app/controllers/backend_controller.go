package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coursehub/coursehub/internal/app/services"
	"github.com/coursehub/coursehub/internal/middleware"
)

// BackendController exposes the backend's liveness and diagnostics
type BackendController struct {
	backendService services.BackendService
}

// NewBackendController creates a new BackendController
func NewBackendController(backendService services.BackendService) *BackendController {
	return &BackendController{backendService: backendService}
}

// Status reports whether the backend answers its liveness probe
// @Summary Backend connection status
// @Tags backend
// @Produce json
// @Success 200 {object} dto.BackendStatusResponse
// @Router /backend/status [get]
func (c *BackendController) Status(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.backendService.Status(ctx.Request.Context()))
}

// Debug proxies the backend's document and chunk counts
// @Summary Backend diagnostics
// @Tags backend
// @Produce json
// @Param courseId query int false "Course ID"
// @Param yearId query int false "Year ID"
// @Param semesterId query int false "Semester ID"
// @Param unitId query int false "Unit ID"
// @Success 200 {object} object
// @Failure 502 {object} dto.ErrorResponse
// @Failure 504 {object} dto.ErrorResponse
// @Router /debug [get]
func (c *BackendController) Debug(ctx *gin.Context) {
	raw, err := c.backendService.Debug(ctx.Request.Context(), ctx.Request.URL.Query())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}
