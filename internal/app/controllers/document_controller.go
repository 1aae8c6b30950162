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

// DocumentController handles document routes that are not nested under a unit
type DocumentController struct {
	documentService services.DocumentService
}

// NewDocumentController creates a new DocumentController
func NewDocumentController(documentService services.DocumentService) *DocumentController {
	return &DocumentController{documentService: documentService}
}

// scopeFromQuery reads courseId/yearId/semesterId/unitId query parameters.
func scopeFromQuery(ctx *gin.Context) (models.Scope, bool) {
	var scope models.Scope
	fields := []struct {
		key string
		dst **int64
	}{
		{"courseId", &scope.CourseID},
		{"yearId", &scope.YearID},
		{"semesterId", &scope.SemesterID},
		{"unitId", &scope.UnitID},
	}
	for _, f := range fields {
		id, ok := helpers.ParseOptionalID(ctx.Query(f.key))
		if !ok {
			middleware.RespondBadRequest(ctx, "Invalid "+f.key)
			return models.Scope{}, false
		}
		*f.dst = id
	}
	return scope, true
}

// ListDocuments lists documents with their hierarchy
// @Summary List documents with hierarchy
// @Description Newest first. The most specific filter given wins.
// @Tags documents
// @Produce json
// @Param courseId query int false "Course ID"
// @Param yearId query int false "Year ID"
// @Param semesterId query int false "Semester ID"
// @Param unitId query int false "Unit ID"
// @Success 200 {array} models.DocumentWithHierarchy
// @Failure 400 {object} dto.ErrorResponse
// @Router /documents [get]
func (c *DocumentController) ListDocuments(ctx *gin.Context) {
	scope, ok := scopeFromQuery(ctx)
	if !ok {
		return
	}

	docs, err := c.documentService.ListDocuments(ctx.Request.Context(), scope)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, docs)
}

// GetDocument returns one document record
// @Summary Get a document
// @Tags documents
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} models.Document
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /documents/{id} [get]
func (c *DocumentController) GetDocument(ctx *gin.Context) {
	id, ok := idParam(ctx, "Invalid document ID")
	if !ok {
		return
	}

	doc, err := c.documentService.GetDocument(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, doc)
}

// DeleteDocument deletes a document record and its file
// @Summary Delete a document
// @Tags documents
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /documents/{id} [delete]
func (c *DocumentController) DeleteDocument(ctx *gin.Context) {
	id, ok := idParam(ctx, "Invalid document ID")
	if !ok {
		return
	}

	if err := c.documentService.DeleteDocument(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
