package api

import (
	"net/http"
	"time"

	"github.com/futig/form-builder/internal/api/docs"
	formapi "github.com/futig/form-builder/internal/api/form"
	"github.com/futig/form-builder/internal/api/middleware"
	submissionapi "github.com/futig/form-builder/internal/api/submission"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// RouterConfig holds the cross-cutting settings of the HTTP surface
type RouterConfig struct {
	RequestTimeout     time.Duration
	CORSAllowedOrigins []string
}

// SetupRouter creates and configures the HTTP router
func SetupRouter(
	formHandler *formapi.Handler,
	submissionHandler *submissionapi.Handler,
	cfg RouterConfig,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	if cfg.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	docs.RegisterRoutes(r)

	r.Route("/api", func(r chi.Router) {
		formapi.RegisterRoutes(r, formHandler)
		submissionapi.RegisterRoutes(r, submissionHandler)
	})

	return r
}
