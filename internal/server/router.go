package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clearpath-labs/policyrag/internal/api/handlers"
	"github.com/clearpath-labs/policyrag/internal/api/middleware"
)

type RouterConfig struct {
	// APIKey protects /search and /ingest when non-empty. /health stays open.
	APIKey        string
	SearchHandler *handlers.SearchHandler
	IngestHandler *handlers.IngestHandler
	HealthHandler *handlers.HealthHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 1 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", cfg.HealthHandler.Health)

	r.Group(func(r chi.Router) {
		r.Use(middleware.APIKeyAuth(cfg.APIKey))

		r.Post("/search", cfg.SearchHandler.Search)
		r.Post("/ingest", cfg.IngestHandler.Ingest)
	})

	return r
}
