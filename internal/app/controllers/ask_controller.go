package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coursehub/coursehub/internal/app/models/dto"
	"github.com/coursehub/coursehub/internal/app/services"
	"github.com/coursehub/coursehub/internal/middleware"
)

// AskController proxies questions to the question-answering backend
type AskController struct {
	askService services.AskService
}

// NewAskController creates a new AskController
func NewAskController(askService services.AskService) *AskController {
	return &AskController{askService: askService}
}

// Ask answers a question over the uploaded documents
// @Summary Ask a question
// @Description Filters narrow the search to a course, year, semester or unit; the most specific wins.
// @Tags ask
// @Accept json
// @Produce json
// @Param request body dto.AskRequest true "Question and optional filters"
// @Success 200 {object} dto.AskResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse "Backend failed"
// @Failure 503 {object} dto.ErrorResponse "Backend unreachable"
// @Failure 504 {object} dto.ErrorResponse "Backend timed out"
// @Router /ask [post]
func (c *AskController) Ask(ctx *gin.Context) {
	var req dto.AskRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.askService.Ask(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
