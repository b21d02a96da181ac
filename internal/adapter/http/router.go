package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/saklain/khatabook/internal/adapter/http/handler"
	"github.com/saklain/khatabook/internal/adapter/http/middleware"
	"github.com/saklain/khatabook/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler     *handler.AccountHandler
	TransactionHandler *handler.TransactionHandler
	PaymentHandler     *handler.PaymentHandler
	DashboardHandler   *handler.DashboardHandler
	HealthHandler      *handler.HealthHandler
	IdempotencyStore   usecase.IdempotencyStore
	RateLimiter        *middleware.RateLimiter
	Logger             zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.IdempotencyKeyHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Put("/{id}", cfg.AccountHandler.Update)
			r.Delete("/{id}", cfg.AccountHandler.Delete)
			r.Get("/{id}/statement", cfg.AccountHandler.Statement)
		})

		// Transactions
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", cfg.TransactionHandler.Create)
			r.Get("/", cfg.TransactionHandler.List)
			r.Get("/{id}", cfg.TransactionHandler.Get)
			r.Delete("/{id}", cfg.TransactionHandler.Delete)
		})

		// Payments
		r.Route("/payments", func(r chi.Router) {
			r.Post("/", cfg.PaymentHandler.Create)
			r.Get("/", cfg.PaymentHandler.List)
			r.Get("/{id}", cfg.PaymentHandler.Get)
			r.Delete("/{id}", cfg.PaymentHandler.Delete)
		})

		// Dashboard
		r.Get("/dashboard/summary", cfg.DashboardHandler.Summary)
		r.Get("/ledger/consistency", cfg.DashboardHandler.CheckConsistency)
	})

	return r
}
