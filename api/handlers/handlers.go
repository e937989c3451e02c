package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jonboulle/clockwork"
	"github.com/malbeclabs/weo/agent/pkg/workflow"
	"github.com/malbeclabs/weo/api/metrics"
	"github.com/malbeclabs/weo/indexer/pkg/weo"
)

// Answerer produces answers to free-text questions. *workflow.Assistant
// satisfies it.
type Answerer interface {
	GenerateResponse(ctx context.Context, query, hint string) *workflow.Answer
}

type Config struct {
	Logger    *slog.Logger
	Store     *weo.Store
	Assistant Answerer
	Clock     clockwork.Clock
	// AskLimiter throttles /api/ask per client IP. Nil disables throttling.
	AskLimiter *RateLimiter
	// AllowedOrigins for CORS. Empty allows any origin.
	AllowedOrigins []string
	Version        VersionResponse
}

func (cfg *Config) Validate() error {
	if cfg.Logger == nil {
		return errors.New("logger is required")
	}
	if cfg.Store == nil {
		return errors.New("store is required")
	}
	if cfg.Assistant == nil {
		return errors.New("assistant is required")
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	return nil
}

// Handlers serves the indicator API over a store built at startup.
type Handlers struct {
	log       *slog.Logger
	store     *weo.Store
	assistant Answerer
	clock     clockwork.Clock
	limiter   *RateLimiter
	origins   []string
	version   VersionResponse
}

func New(cfg Config) (*Handlers, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Handlers{
		log:       cfg.Logger,
		store:     cfg.Store,
		assistant: cfg.Assistant,
		clock:     cfg.Clock,
		limiter:   cfg.AskLimiter,
		origins:   cfg.AllowedOrigins,
		version:   cfg.Version,
	}, nil
}

// Router returns the full route table.
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", h.Healthz)
	r.Get("/readyz", h.Readyz)

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", h.GetVersion)

		r.Route("/indicators", func(r chi.Router) {
			r.Get("/", h.ListIndicators)
			r.Get("/search", h.SearchIndicators)
			r.Get("/{code}", h.GetIndicator)
			r.Get("/{code}/export", h.ExportIndicator)
			r.Get("/{code}/chart", h.ChartIndicator)
		})

		r.Group(func(r chi.Router) {
			if h.limiter != nil {
				r.Use(RateLimitMiddleware(h.limiter))
			}
			r.Post("/ask", h.Ask)
		})
	})
	return r
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("JSON encoding error", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: code, Message: message})
}

// GetIPFromRequest returns the client IP. RealIP middleware has already
// rewritten RemoteAddr from X-Forwarded-For / X-Real-IP when present.
func GetIPFromRequest(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
