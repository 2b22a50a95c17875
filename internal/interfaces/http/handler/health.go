package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shelfscan/backend/internal/interfaces/http/dto"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping() error
}

// HealthHandler handles the health endpoint
type HealthHandler struct {
	BaseHandler
	db      Pinger
	appName string
	version string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db Pinger, appName, version string) *HealthHandler {
	return &HealthHandler{db: db, appName: appName, version: version}
}

// RegisterRoutes registers health routes on the given group
func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

// Health handles GET /health. Degraded database connectivity answers 503 so
// load balancers can rotate the instance out.
func (h *HealthHandler) Health(c *gin.Context) {
	status := "ok"
	httpStatus := http.StatusOK

	dbStatus := "ok"
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			dbStatus = "unreachable"
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
		}
	}

	c.JSON(httpStatus, dto.NewSuccessResponse(gin.H{
		"status":    status,
		"app":       h.appName,
		"version":   h.version,
		"database":  dbStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}))
}
