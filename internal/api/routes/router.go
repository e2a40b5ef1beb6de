package routes

import (
	"net/http"

	"github.com/carecost/predictor/internal/api/handlers"
	"github.com/carecost/predictor/internal/api/middleware"
	"github.com/carecost/predictor/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	predictionHandler *handlers.PredictionHandler
	insightHandler    *handlers.InsightHandler
	authHandler       *handlers.AuthHandler
	reportHandler     *handlers.ReportHandler

	authMiddleware  *middleware.AuthMiddleware
	cacheMiddleware *middleware.CacheMiddleware
	allowedOrigins  []string
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	predictionHandler *handlers.PredictionHandler,
	insightHandler *handlers.InsightHandler,
	authHandler *handlers.AuthHandler,
	reportHandler *handlers.ReportHandler,
	authMiddleware *middleware.AuthMiddleware,
	cacheMiddleware *middleware.CacheMiddleware,
	allowedOrigins []string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:               http.NewServeMux(),
		predictionHandler: predictionHandler,
		insightHandler:    insightHandler,
		authHandler:       authHandler,
		reportHandler:     reportHandler,
		authMiddleware:    authMiddleware,
		cacheMiddleware:   cacheMiddleware,
		allowedOrigins:    allowedOrigins,
		metrics:           metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Auth endpoints
	if r.authHandler != nil {
		r.mux.HandleFunc("POST /api/auth/signup", r.authHandler.Signup)
		r.mux.HandleFunc("POST /api/auth/login", r.authHandler.Login)
	}

	// Prediction endpoints. History is keyed by the authenticated user, so
	// bearer tokens are optional on predict and required on history.
	optional := r.optionalAuth
	required := r.requiredAuth

	r.mux.Handle("POST /api/predictions", optional(http.HandlerFunc(r.predictionHandler.Predict)))
	r.mux.HandleFunc("POST /api/predictions/whatif", r.predictionHandler.WhatIf)
	r.mux.HandleFunc("GET /api/predictions/factors", r.predictionHandler.Factors)
	r.mux.Handle("GET /api/predictions/history", required(http.HandlerFunc(r.predictionHandler.History)))
	r.mux.Handle("DELETE /api/predictions/history", required(http.HandlerFunc(r.predictionHandler.ClearHistory)))

	// Insight endpoints
	r.mux.HandleFunc("POST /api/insights/comparison", r.insightHandler.Comparison)
	r.mux.HandleFunc("POST /api/insights/accident", r.insightHandler.Accident)
	r.mux.HandleFunc("POST /api/insights/schemes", r.insightHandler.Schemes)

	// Report endpoint
	r.mux.HandleFunc("POST /api/reports", r.reportHandler.Generate)

	// Model metadata endpoint
	r.mux.HandleFunc("GET /api/model", r.predictionHandler.ModelInfo)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}

func (r *Router) optionalAuth(next http.Handler) http.Handler {
	if r.authMiddleware == nil {
		return next
	}
	return r.authMiddleware.Optional(next)
}

func (r *Router) requiredAuth(next http.Handler) http.Handler {
	if r.authMiddleware == nil {
		return next
	}
	return r.authMiddleware.Required(next)
}
