// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/cepet-deal/backend/internal/integration/entrypoint/controller"
	"github.com/cepet-deal/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	financeController     *controller.FinanceController
	transactionController *controller.TransactionController
	authMiddleware        *middleware.AuthMiddleware
	exportRateLimiter     *middleware.ExportRateLimiter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	financeController *controller.FinanceController,
	transactionController *controller.TransactionController,
	authMiddleware *middleware.AuthMiddleware,
	exportRateLimiter *middleware.ExportRateLimiter,
) *Router {
	return &Router{
		healthController:      healthController,
		financeController:     financeController,
		transactionController: transactionController,
		authMiddleware:        authMiddleware,
		exportRateLimiter:     exportRateLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Default middleware: logger and recovery.
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		finance := v1.Group("/finance")
		finance.Use(r.authMiddleware.Authenticate())
		{
			finance.GET("/stats", r.financeController.GetStats)
			finance.GET("/trends", r.financeController.GetTrends)
			finance.GET("/transactions", r.transactionController.List)
			finance.POST("/transactions/bulk-delete", r.transactionController.BulkDelete)
			finance.GET("/export/:format", r.exportRateLimiter.Middleware(), r.financeController.Export)
		}
	}
}
