package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/saklain/khatabook/internal/adapter/http"
	"github.com/saklain/khatabook/internal/adapter/http/handler"
	postgresRepo "github.com/saklain/khatabook/internal/adapter/repository/postgres"
	redisRepo "github.com/saklain/khatabook/internal/adapter/repository/redis"
	"github.com/saklain/khatabook/internal/infrastructure/config"
	"github.com/saklain/khatabook/internal/infrastructure/logger"
	"github.com/saklain/khatabook/internal/infrastructure/metrics"
	"github.com/saklain/khatabook/internal/infrastructure/postgres"
	"github.com/saklain/khatabook/internal/infrastructure/redis"
	"github.com/saklain/khatabook/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	log.Logger = logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run schema migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	appMetrics := metrics.New()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	paymentRepo := postgresRepo.NewPaymentRepository(pool)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	summaryCache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier()

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, transactionRepo, paymentRepo, idGen).
		WithMetrics(appMetrics)
	ledgerUC := usecase.NewLedgerUseCase(txManager, accountRepo, transactionRepo, paymentRepo, idGen).
		WithRetrier(retrier).
		WithMetrics(appMetrics)
	statementUC := usecase.NewStatementUseCase(transactionRepo, paymentRepo)
	dashboardUC := usecase.NewDashboardUseCase(ledgerRepo, summaryCache)

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(accountUC, statementUC)
	transactionHandler := handler.NewTransactionHandler(ledgerUC, statementUC)
	paymentHandler := handler.NewPaymentHandler(ledgerUC, statementUC)
	dashboardHandler := handler.NewDashboardHandler(dashboardUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:     accountHandler,
		TransactionHandler: transactionHandler,
		PaymentHandler:     paymentHandler,
		DashboardHandler:   dashboardHandler,
		HealthHandler:      healthHandler,
		IdempotencyStore:   idempotencyStore,
		Logger:             log.Logger,
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
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
