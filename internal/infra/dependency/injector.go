// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/cepet-deal/backend/config"
	"github.com/cepet-deal/backend/internal/application/adapter"
	"github.com/cepet-deal/backend/internal/application/usecase/export"
	"github.com/cepet-deal/backend/internal/application/usecase/finance"
	"github.com/cepet-deal/backend/internal/application/usecase/transaction"
	"github.com/cepet-deal/backend/internal/infra/server/router"
	"github.com/cepet-deal/backend/internal/integration/adapters"
	"github.com/cepet-deal/backend/internal/integration/cache"
	"github.com/cepet-deal/backend/internal/integration/entrypoint/controller"
	"github.com/cepet-deal/backend/internal/integration/entrypoint/middleware"
	"github.com/cepet-deal/backend/internal/integration/persistence"
	"github.com/cepet-deal/backend/internal/integration/report"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
// The redis client may be nil; the report use cases then skip caching.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, dbHealthChecker func() bool) *Injector {
	// Repositories
	transactionRepo := persistence.NewTransactionRepository(db)
	listingRepo := persistence.NewListingRepository(db)

	// Adapters and services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret)
	var reportCache adapter.ReportCache
	if redisClient != nil {
		reportCache = cache.NewRedisReportCache(redisClient)
	}

	// Finance use cases
	getStatsUseCase := finance.NewGetFinanceStatsUseCase(transactionRepo, reportCache, cfg.Cache.ReportTTL)
	getTrendsUseCase := finance.NewGetFinanceTrendsUseCase(transactionRepo, listingRepo, reportCache, cfg.Cache.ReportTTL)

	// Transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	bulkDeleteUseCase := transaction.NewBulkDeleteTransactionsUseCase(transactionRepo, reportCache)

	// Export use case with both renderers
	exportUseCase := export.NewExportReportUseCase(
		transactionRepo,
		listingRepo,
		report.NewPDFRenderer(),
		report.NewExcelRenderer(),
	)

	var cacheHealthChecker func() bool
	if redisClient != nil {
		cacheHealthChecker = func() bool {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(ctx).Err() == nil
		}
	}

	// Controllers and middleware
	healthController := controller.NewHealthController(dbHealthChecker, cacheHealthChecker)
	financeController := controller.NewFinanceController(getStatsUseCase, getTrendsUseCase, exportUseCase)
	transactionController := controller.NewTransactionController(listTransactionsUseCase, bulkDeleteUseCase)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	exportRateLimiter := middleware.NewExportRateLimiter()

	return &Injector{
		Config: cfg,
		DB:     db,
		Router: router.NewRouter(healthController, financeController, transactionController, authMiddleware, exportRateLimiter),
	}
}
