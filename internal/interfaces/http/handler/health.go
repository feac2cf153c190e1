package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/crm/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// Pinger is a dependency that can report whether it is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes
type HealthHandler struct {
	BaseHandler
	checks  map[string]Pinger
	timeout time.Duration
}

// NewHealthHandler creates a HealthHandler. checks maps a dependency name to
// its probe; nil probes are ignored.
func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	filtered := make(map[string]Pinger, len(checks))
	for name, p := range checks {
		if p != nil {
			filtered[name] = p
		}
	}
	return &HealthHandler{checks: filtered, timeout: 2 * time.Second}
}

// Health godoc
// @Summary      Liveness probe
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	h.Success(c, gin.H{"status": "ok"})
}

// Ready godoc
// @Summary      Readiness probe
// @Description  Pings the database and, when configured, Redis.
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	status := make(map[string]string, len(h.checks))
	ready := true
	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			status[name] = err.Error()
			ready = false
			continue
		}
		status[name] = "ok"
	}

	if !ready {
		resp := dto.NewErrorResponseWithRequestID(dto.ErrCodeServiceUnavailable, "Service dependencies unavailable", middleware.GetRequestID(c))
		resp.Data = status
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	h.Success(c, status)
}
