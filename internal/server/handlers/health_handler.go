package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/epd-dashboard/internal/scheduler"
)

// StatusSource reports the latest backend probe.
type StatusSource interface {
	Status() *scheduler.Status
}

// HealthHandler reports liveness and what the probe last saw.
type HealthHandler struct {
	probe StatusSource
}

// NewHealthHandler constructs the health handler. probe may be nil.
func NewHealthHandler(probe StatusSource) *HealthHandler {
	return &HealthHandler{probe: probe}
}

// Health always answers 200 while the process is serving.
func (h *HealthHandler) Health(c *gin.Context) {
	body := gin.H{"status": "ok"}
	if h.probe != nil {
		if status := h.probe.Status(); status != nil {
			body["backend"] = status
		}
	}
	c.JSON(http.StatusOK, body)
}
