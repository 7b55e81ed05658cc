package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/eventhub/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// Pinger is the health check dependency; the database satisfies it
type Pinger interface {
	Ping() error
}

// SystemHandler handles health and system info endpoints
type SystemHandler struct {
	BaseHandler
	db        Pinger
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db Pinger) *SystemHandler {
	return &SystemHandler{
		db:        db,
		startTime: time.Now(),
	}
}

// HealthResponse is the health check payload
type HealthResponse struct {
	Status    string `json:"status"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// Healthz handles GET /healthz. The check includes a database ping; a
// failing ping returns 503 so load balancers stop routing here.
func (h *SystemHandler) Healthz(c *gin.Context) {
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse("UNHEALTHY", "Database is unreachable"))
			return
		}
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(HealthResponse{
		Status:    "ok",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}))
}
