package server

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/preston-bernstein/scoreboard-service/internal/availability"
	"github.com/preston-bernstein/scoreboard-service/internal/config"
	"github.com/preston-bernstein/scoreboard-service/internal/metrics"
	"github.com/preston-bernstein/scoreboard-service/internal/notify"
	"github.com/preston-bernstein/scoreboard-service/internal/orchestrator"
	"github.com/preston-bernstein/scoreboard-service/internal/providers"
	"github.com/preston-bernstein/scoreboard-service/internal/store"
)

// sinks holds every notification consumer the poller publishes to.
type sinks struct {
	store  *store.MemoryStore
	hub    *notify.Hub
	redis  *redis.Client
	fanout notify.Fanout
}

// buildOrchestrator wires the process-wide caches and trackers into one fetcher per league.
func buildOrchestrator(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder, endpoints orchestrator.Endpoints) *orchestrator.Orchestrator {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	if endpoints.OlympicResultsURL == "" {
		endpoints.OlympicResultsURL = cfg.OlympicResultsURL
	}

	return orchestrator.Build(orchestrator.Deps{
		Leagues:       cfg.Leagues,
		Client:        providers.NewHTTPClient(nil, cfg.HTTPTimeout),
		Tracker:       availability.New(availability.Config{Logger: logger}),
		Cache:         store.NewProviderCache(cfg.ProviderCacheTTL),
		LastGood:      store.NewLastGood(),
		Metrics:       recorder,
		Logger:        logger,
		Location:      loc,
		RetryAttempts: cfg.RetryAttempts,
		Endpoints:     endpoints,
	})
}

// buildSinks assembles the latest-notification store, the websocket hub and, when an address
// is configured, the Redis stream publisher.
func buildSinks(cfg config.Config, logger *slog.Logger) sinks {
	s := sinks{
		store: store.NewMemoryStore(),
		hub:   notify.NewHub(logger, cfg.CORSOrigins),
	}

	var streamSink notify.Sink
	if cfg.Redis.Addr != "" {
		s.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		streamSink = notify.NewRedisPublisher(s.redis, cfg.Redis.StreamPrefix)
		if logger != nil {
			logger.Info("redis notification sink enabled",
				slog.String("addr", cfg.Redis.Addr),
				slog.String("stream_prefix", cfg.Redis.StreamPrefix),
			)
		}
	}

	s.fanout = notify.NewFanout(s.store, s.hub, streamSink)
	return s
}
