package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"banking/internal/shared/biztime"
	"banking/internal/shared/logger"
	"banking/internal/shared/version"
)

const healthCheckTimeout = 2 * time.Second

// Service states reported by GET /health
const (
	ServiceRunning      = "running"
	ServiceConnected    = "connected"
	ServiceDisconnected = "disconnected"
	ServiceNotChecked   = "not_checked"
)

type HealthHandler struct {
	db     DatabasePinger
	logger logger.Interface
}

// NewHealthHandler creates the health handler; a nil pinger reports the database as not checked
func NewHealthHandler(db DatabasePinger, logger logger.Interface) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Version   string            `json:"version"`
}

// Root handles GET /
func (h *HealthHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, "Banking System API is running!")
}

// Health handles GET /health. The API answers 200 even when the database is down
// so the state of each dependency can be read from the body.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: biztime.NowUTC(),
		Services: map[string]string{
			"database": h.databaseStatus(c.Request.Context()),
			"api":      ServiceRunning,
		},
		Version: version.Get().Version,
	})
}

// Version handles GET /version
func (h *HealthHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, version.Get())
}

func (h *HealthHandler) databaseStatus(ctx context.Context) string {
	if h.db == nil {
		return ServiceNotChecked
	}

	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warnw("database health check failed", "error", err)
		return ServiceDisconnected
	}
	return ServiceConnected
}
