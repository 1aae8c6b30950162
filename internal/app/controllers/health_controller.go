package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/coursehub/coursehub/internal/app/models/dto"
)

// Pinger is satisfied by *sql.DB and the store handle.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthController answers liveness checks
type HealthController struct {
	store Pinger
}

// NewHealthController creates a new HealthController
func NewHealthController(store Pinger) *HealthController {
	return &HealthController{store: store}
}

// Ping answers without touching any dependency. It is mounted outside /api.
func (c *HealthController) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "pong"})
}

// Health checks the store connection
// @Summary Health
// @Tags health
// @Produce json
// @Success 200 {object} object
// @Failure 503 {object} dto.ErrorResponse
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	if err := c.store.PingContext(pingCtx); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "Database unavailable", Details: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ok", "database": "ok"})
}
