// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const serviceName = "cepet-deal-finance-api"

// HealthController reports the service's ability to serve finance reports:
// the transaction store must answer and, when configured, so should the
// report cache.
type HealthController struct {
	dbHealthChecker    func() bool
	cacheHealthChecker func() bool
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	Database    string `json:"database"`
	ReportCache string `json:"report_cache"`
	Timestamp   string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance. A nil cache
// checker means the service runs without a report cache.
func NewHealthController(dbHealthChecker, cacheHealthChecker func() bool) *HealthController {
	return &HealthController{
		dbHealthChecker:    dbHealthChecker,
		cacheHealthChecker: cacheHealthChecker,
	}
}

// Check handles GET /health requests.
// The database is load-bearing: without it no report can be served, so its
// failure degrades the overall status. A dead cache only costs recomputation
// and leaves the status ok.
func (h *HealthController) Check(c *gin.Context) {
	status := "ok"
	httpStatus := http.StatusOK

	dbStatus := "disconnected"
	if h.dbHealthChecker != nil && h.dbHealthChecker() {
		dbStatus = "connected"
	} else {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	cacheStatus := "disabled"
	if h.cacheHealthChecker != nil {
		cacheStatus = "disconnected"
		if h.cacheHealthChecker() {
			cacheStatus = "connected"
		}
	}

	c.JSON(httpStatus, HealthResponse{
		Status:      status,
		Service:     serviceName,
		Database:    dbStatus,
		ReportCache: cacheStatus,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	})
}
