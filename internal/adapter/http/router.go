package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/groupledger/groupledger/internal/adapter/http/handler"
	"github.com/groupledger/groupledger/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	OrganizationHandler  *handler.OrganizationHandler
	UploadHandler        *handler.UploadHandler
	ConsolidationHandler *handler.ConsolidationHandler
	KPIHandler           *handler.KPIHandler
	ForecastHandler      *handler.ForecastHandler
	ReportHandler        *handler.ReportHandler
	HealthHandler        *handler.HealthHandler
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Metrics)
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Recovery)

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Organizations
		r.Route("/organizations", func(r chi.Router) {
			r.Post("/", cfg.OrganizationHandler.Create)
			r.Get("/", cfg.OrganizationHandler.List)
			r.Get("/{id}", cfg.OrganizationHandler.Get)
			r.Put("/{id}", cfg.OrganizationHandler.Update)
			r.Post("/{id}/kpis", cfg.KPIHandler.Calculate)
			r.Get("/{id}/kpis", cfg.KPIHandler.List)
		})

		// Uploads
		r.Route("/uploads", func(r chi.Router) {
			r.Post("/", cfg.UploadHandler.Create)
			r.Get("/", cfg.UploadHandler.List)
			r.Get("/{id}", cfg.UploadHandler.Get)
		})

		// Consolidation
		r.Route("/consolidation", func(r chi.Router) {
			r.Get("/", cfg.ConsolidationHandler.Get)
			r.Get("/periods", cfg.ConsolidationHandler.Periods)
		})

		// Cashflow
		r.Route("/cashflow", func(r chi.Router) {
			r.Get("/forecast", cfg.ForecastHandler.Get)
			r.Get("/summary", cfg.ForecastHandler.Summary)
		})

		// Reports
		r.Route("/reports", func(r chi.Router) {
			r.Post("/", cfg.ReportHandler.Create)
			r.Get("/", cfg.ReportHandler.List)
			r.Get("/{id}", cfg.ReportHandler.Get)
			r.Post("/{id}/sent", cfg.ReportHandler.MarkSent)
		})
	})

	return r
}
