package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	userapp "github.com/oksasatya/go-user-auth-api/internal/application"
	"github.com/oksasatya/go-user-auth-api/pkg/response"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	Readiness *userapp.Readiness
	Timeout   time.Duration
}

func NewHealthHandler(r *userapp.Readiness) *HealthHandler {
	return &HealthHandler{Readiness: r, Timeout: 2 * time.Second}
}

func (h *HealthHandler) Live(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"status": "ok"}, "alive", nil)
}

func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.Timeout)
	defer cancel()
	if err := h.Readiness.Ready(ctx); err != nil {
		response.Error[any](c, http.StatusServiceUnavailable, "not ready", err.Error())
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": "ready"}, "ready", nil)
}
