package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/subhub/internal/shared/logger"
	"github.com/orris-inc/subhub/internal/shared/version"
)

const healthCheckTimeout = 2 * time.Second

// Pinger checks a dependency.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	ping   Pinger
	logger logger.Interface
}

func NewHealthHandler(ping Pinger, logger logger.Interface) *HealthHandler {
	return &HealthHandler{ping: ping, logger: logger}
}

// Check handles GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	if h.ping != nil {
		if err := h.ping(ctx); err != nil {
			h.logger.Errorw("health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version.Version})
}
