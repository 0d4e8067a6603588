package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/groupledger/groupledger/internal/adapter/http"
	"github.com/groupledger/groupledger/internal/adapter/http/handler"
	postgresRepo "github.com/groupledger/groupledger/internal/adapter/repository/postgres"
	redisRepo "github.com/groupledger/groupledger/internal/adapter/repository/redis"
	"github.com/groupledger/groupledger/internal/infrastructure/config"
	"github.com/groupledger/groupledger/internal/infrastructure/logger"
	"github.com/groupledger/groupledger/internal/infrastructure/metrics"
	"github.com/groupledger/groupledger/internal/infrastructure/postgres"
	"github.com/groupledger/groupledger/internal/infrastructure/redis"
	"github.com/groupledger/groupledger/internal/usecase"
)

func main() {
	// Local development overrides; absent in production.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns, cfg.DatabaseTimeout)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	appLogger.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, appLogger); err != nil {
		appLogger.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	appLogger.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	orgRepo := postgresRepo.NewOrganizationRepository(pool)
	uploadRepo := postgresRepo.NewUploadRepository(pool)
	journalRepo := postgresRepo.NewJournalRepository(pool)
	invoiceRepo := postgresRepo.NewInvoiceRepository(pool)
	contractRepo := postgresRepo.NewContractRepository(pool)
	timeRepo := postgresRepo.NewTimeEntryRepository(pool)
	treasuryRepo := postgresRepo.NewTreasuryRepository(pool)
	dealRepo := postgresRepo.NewDealRepository(pool)
	kpiRepo := postgresRepo.NewKPIRepository(pool, postgresRepo.NewRetrier(appLogger))
	reportRepo := postgresRepo.NewReportRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	appMetrics := metrics.New()

	// Initialize use cases
	orgUC := usecase.NewOrganizationUseCase(orgRepo, idGen)
	ingestUC := usecase.NewIngestUseCase(
		uploadRepo, journalRepo, invoiceRepo, contractRepo, timeRepo,
		treasuryRepo, dealRepo, orgUC, txManager, idGen, appMetrics, appLogger,
	)
	consolidationUC := usecase.NewConsolidationUseCase(journalRepo, orgRepo, cache, appMetrics, appLogger)
	kpiUC := usecase.NewKPIUseCase(orgRepo, journalRepo, invoiceRepo, contractRepo, timeRepo, kpiRepo, idGen, appMetrics, appLogger)
	forecastUC := usecase.NewForecastUseCase(treasuryRepo, invoiceRepo, orgUC, appLogger)
	reportUC := usecase.NewReportUseCase(reportRepo, orgRepo, consolidationUC, kpiUC, forecastUC, idGen, appMetrics, appLogger)

	// Initialize handlers
	orgHandler := handler.NewOrganizationHandler(orgUC)
	uploadHandler := handler.NewUploadHandler(ingestUC, consolidationUC)
	consolidationHandler := handler.NewConsolidationHandler(consolidationUC)
	kpiHandler := handler.NewKPIHandler(kpiUC)
	forecastHandler := handler.NewForecastHandler(forecastUC)
	reportHandler := handler.NewReportHandler(reportUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		OrganizationHandler:  orgHandler,
		UploadHandler:        uploadHandler,
		ConsolidationHandler: consolidationHandler,
		KPIHandler:           kpiHandler,
		ForecastHandler:      forecastHandler,
		ReportHandler:        reportHandler,
		HealthHandler:        healthHandler,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		appLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server stopped")
}
