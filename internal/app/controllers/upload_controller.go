package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coursehub/coursehub/internal/app/models/dto"
	"github.com/coursehub/coursehub/internal/app/services"
	"github.com/coursehub/coursehub/internal/middleware"
	"github.com/coursehub/coursehub/internal/pkg/helpers"
)

// UploadController accepts PDF uploads for a unit
type UploadController struct {
	uploadService services.UploadService
	maxBytes      int64
}

// NewUploadController creates a new UploadController. maxBytes bounds the request body.
func NewUploadController(uploadService services.UploadService, maxBytes int64) *UploadController {
	return &UploadController{uploadService: uploadService, maxBytes: maxBytes}
}

// Upload handles multipart PDF uploads
// @Summary Upload PDFs to a unit
// @Description Saves each PDF locally, records it, then forwards the batch to the question-answering backend.
// @Description 207 means the files were saved but the backend could not process them.
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param unitId formData int true "Unit ID"
// @Param files formData file true "PDF files"
// @Success 200 {object} dto.UploadResponse
// @Success 207 {object} dto.UploadResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /upload [post]
func (c *UploadController) Upload(ctx *gin.Context) {
	if c.maxBytes > 0 {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, c.maxBytes)
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			ctx.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{Error: "Upload is too large"})
			return
		}
		middleware.RespondBadRequest(ctx, "Invalid multipart form")
		return
	}

	unitID, ok := helpers.ParseID(firstValue(form, "unitId"))
	if !ok {
		middleware.RespondBadRequest(ctx, "Invalid or missing unitId")
		return
	}

	files := append(form.File["files"], form.File["files[]"]...)

	outcome, err := c.uploadService.Upload(ctx.Request.Context(), unitID, files)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	status := http.StatusOK
	switch outcome.Status {
	case services.UploadPartial:
		status = http.StatusMultiStatus
	case services.UploadNoneSaved:
		status = http.StatusBadRequest
	}
	ctx.JSON(status, outcome.Response)
}

func firstValue(form *multipart.Form, key string) string {
	if values := form.Value[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}
