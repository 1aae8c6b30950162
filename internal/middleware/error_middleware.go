package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coursehub/coursehub/internal/app/models/dto"
	"github.com/coursehub/coursehub/internal/pkg/apperrors"
	"github.com/coursehub/coursehub/internal/pkg/logger"
)

// --- Central Error Handling ---

// StatusFor maps an error onto the HTTP status it should be reported with.
func StatusFor(err error) int {
	var ce *apperrors.CustomError
	if errors.As(err, &ce) && ce.Status != 0 {
		return ce.Status
	}

	switch {
	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrBackendUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, apperrors.ErrBackendTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, apperrors.ErrBackendMalformed):
		return http.StatusInternalServerError
	case errors.Is(err, apperrors.ErrBackendFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// HandleAPIError writes {"error": message} with the status derived from err.
// Server-side failures are logged with their cause; the body carries only the message.
func HandleAPIError(c *gin.Context, err error) {
	status := StatusFor(err)
	body := dto.ErrorResponse{Error: apperrors.Message(err, http.StatusText(status))}

	var ce *apperrors.CustomError
	if errors.As(err, &ce) {
		body.Details = ce.Details
	}

	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("path", c.FullPath()).
			Int("status", status).
			Msg("Request failed")
	}

	c.AbortWithStatusJSON(status, body)
}

// RespondBadRequest is a shortcut for malformed ids and bodies.
func RespondBadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: message})
}
