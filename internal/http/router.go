package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/preston-bernstein/scoreboard-service/internal/http/handlers"
	"github.com/preston-bernstein/scoreboard-service/internal/http/middleware"
	"github.com/preston-bernstein/scoreboard-service/internal/http/requestutil"
	"github.com/preston-bernstein/scoreboard-service/internal/metrics"
)

// RouterConfig collects what the API router mounts.
type RouterConfig struct {
	Handler  *handlers.Handler
	Push     nethttp.Handler
	Logger   *slog.Logger
	Recorder *metrics.Recorder
	// Empty allows every origin.
	CORSOrigins []string
}

// NewRouter registers the read API, the websocket push endpoint and CORS handling.
func NewRouter(cfg RouterConfig) nethttp.Handler {
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", requestutil.HeaderRequestID},
		ExposedHeaders: []string{requestutil.HeaderRequestID},
		MaxAge:         300,
	}))
	r.Use(func(next nethttp.Handler) nethttp.Handler {
		return middleware.LoggingMiddleware(cfg.Logger, cfg.Recorder, next)
	})

	h := cfg.Handler
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Get("/leagues", h.Leagues)
	r.Get("/leagues/{league}/games", h.LeagueGames)
	if cfg.Push != nil {
		r.Method(nethttp.MethodGet, "/ws", cfg.Push)
	}
	return r
}
