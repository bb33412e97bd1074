package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "spendsmart/internal/errors"
)

// Pinger reports whether the record store answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness endpoint.
type HealthHandler struct {
	store Pinger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// HealthResponse is the body of a successful health check.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// Health handles the health check.
// @Summary     Health check
// @Description Reports whether the API and its database are reachable
// @Tags        health
// @Produce     json
// @Success     200 {object} HealthResponse "Healthy"
// @Failure     503 {object} ErrorResponse "Database unreachable"
// @Router      /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrStoreUnavailable, err))
		return
	}

	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
