package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/coursehub/coursehub/internal/middleware"
	"github.com/coursehub/coursehub/internal/pkg/helpers"
)

// idParam parses the :id path parameter, answering 400 with message when it is not a positive integer.
func idParam(ctx *gin.Context, message string) (int64, bool) {
	id, ok := helpers.ParseID(ctx.Param("id"))
	if !ok {
		middleware.RespondBadRequest(ctx, message)
		return 0, false
	}
	return id, true
}
