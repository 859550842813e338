// Package api provides the HTTP API for the air quality dashboard.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/sejalthool/AQI/internal/api/handler"
	"github.com/sejalthool/AQI/internal/api/middleware"
	"github.com/sejalthool/AQI/internal/api/response"
	"github.com/sejalthool/AQI/internal/provider/resilience"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics
	AirService  handler.AirService
	Geocoder    handler.LocationSearcher
	Providers   *resilience.Registry
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "aqi-api"
	}

	providers := cfg.Providers
	if providers == nil {
		providers = resilience.GlobalRegistry
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.AirService, providers)
	searchHandler := handler.NewSearchHandler(cfg.Geocoder)
	airHandler := handler.NewAirHandler(cfg.AirService)

	// Create rate limit middleware for different endpoint categories
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	// Unknown routes answer with a problem document
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, r, "resource not found")
	})

	// Probes stay outside /v1 for load balancer conventions
	r.Get("/healthz", opsHandler.HealthCheck)
	r.Get("/readyz", opsHandler.ReadinessCheck)

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Location search (public) - standard rate limiting
		r.Route("/locations", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/search", searchHandler.Search)
		})

		// Air quality endpoints
		r.Route("/air", func(r chi.Router) {
			// The snapshot fans out to several provider feeds - strict rate limiting
			r.With(expensiveRateLimit).Get("/quality", airHandler.Quality)
			r.With(standardRateLimit).Get("/stations", airHandler.Stations)
		})

		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/status", opsHandler.SystemStatus)
		})
	})

	return r
}
