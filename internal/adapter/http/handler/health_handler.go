package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/vijayakumarsahana16-san/phishproof/internal/usecase"
)

// HealthHandler handles liveness and readiness endpoints
type HealthHandler struct {
	detector usecase.DetectorUsecase
	redis    *redis.Client
}

// NewHealthHandler creates a new health handler. redis may be nil when the
// verdict cache is disabled.
func NewHealthHandler(detector usecase.DetectorUsecase, redis *redis.Client) *HealthHandler {
	return &HealthHandler{
		detector: detector,
		redis:    redis,
	}
}

// Health handles GET /health. It reports liveness only and is always ok.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ReadyStatus represents the readiness response
type ReadyStatus struct {
	Status     string            `json:"status"`
	Samples    int               `json:"samples"`
	Reason     string            `json:"reason,omitempty"`
	Components map[string]string `json:"components"`
}

// Ready handles GET /ready. The service is ready once a model was fitted.
// An unreachable cache is reported but does not block readiness.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	report := h.detector.Status()
	components := map[string]string{"model": string(report.Status)}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			components["redis"] = "error: " + err.Error()
		} else {
			components["redis"] = "ok"
		}
	} else {
		components["redis"] = "not configured"
	}

	if !report.IsTrained() {
		c.JSON(http.StatusServiceUnavailable, ReadyStatus{
			Status:     "not ready",
			Samples:    report.Samples,
			Reason:     report.Reason,
			Components: components,
		})
		return
	}

	c.JSON(http.StatusOK, ReadyStatus{
		Status:     "ready",
		Samples:    report.Samples,
		Components: components,
	})
}
