// Package orchestrator produces one league's game list per cycle by walking a priority
// ordered chain of providers.
package orchestrator

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
	"github.com/preston-bernstein/scoreboard-service/internal/logging"
	"github.com/preston-bernstein/scoreboard-service/internal/metrics"
	"github.com/preston-bernstein/scoreboard-service/internal/providers"
	"github.com/preston-bernstein/scoreboard-service/internal/store"
	"github.com/preston-bernstein/scoreboard-service/internal/timeutil"
)

// Stage is one provider in a chain. Gate and Post are optional.
type Stage struct {
	Provider providers.Provider
	Gate     Gate
	// Post runs on a non-empty result before it is cached.
	Post func(ctx context.Context, list []games.Game) []games.Game
}

// ChainConfig wires a Chain.
type ChainConfig struct {
	League games.League
	Stages []Stage
	Cache  *store.ProviderCache
	// LastGood, when set, backs the chain with the league's last non-empty result.
	LastGood *store.LastGood
	Metrics  *metrics.Recorder
	Logger   *slog.Logger
}

// Outcome is the result of one chain run. Provider is empty when nothing produced games.
type Outcome struct {
	Games     []games.Game
	Provider  string
	FetchedAt time.Time
	Degraded  bool
}

// Chain tries its stages in order and stops at the first one with games.
type Chain struct {
	league   games.League
	stages   []Stage
	cache    *store.ProviderCache
	lastGood *store.LastGood
	metrics  *metrics.Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewChain constructs a Chain.
func NewChain(cfg ChainConfig) *Chain {
	return &Chain{
		league:   cfg.League,
		stages:   cfg.Stages,
		cache:    cfg.Cache,
		lastGood: cfg.LastGood,
		metrics:  cfg.Metrics,
		logger:   cfg.Logger,
		now:      time.Now,
	}
}

// Providers lists the stage names in priority order.
func (c *Chain) Providers() []string {
	out := make([]string, 0, len(c.stages))
	for _, s := range c.stages {
		out = append(out, s.Provider.Name())
	}
	return out
}

// Run walks the chain for date. Stage failures are logged and never returned; the worst
// outcome is an empty list.
func (c *Chain) Run(ctx context.Context, date timeutil.TargetDate) Outcome {
	req := providers.Request{League: c.league, Date: date}
	logger := logging.FromContext(ctx, c.logger)

	for _, stage := range c.stages {
		if ctx.Err() != nil {
			break
		}
		name := stage.Provider.Name()
		key := store.CacheKey{Provider: name, League: c.league, Date: date.ISO}

		if c.cache != nil {
			if entry, ok := c.cache.Get(key); ok && len(entry.Games) > 0 {
				c.metrics.RecordCacheHit(name)
				return Outcome{Games: entry.Games, Provider: name, FetchedAt: entry.SavedAt}
			}
		}

		if stage.Gate != nil && !stage.Gate.Allow(ctx) {
			c.metrics.RecordProviderSkip(name)
			providers.LogStage(ctx, logger, slog.LevelInfo, stage.Provider, req, "provider unavailable, skipping")
			continue
		}

		started := time.Now()
		list, err := stage.Provider.FetchGames(ctx, req)
		elapsed := time.Since(started)
		c.metrics.RecordProviderAttempt(name, elapsed, len(list), err)
		if stage.Gate != nil {
			stage.Gate.Observe(err)
		}

		if err != nil {
			providers.LogStage(ctx, logger, slog.LevelWarn, stage.Provider, req, "provider fetch failed",
				slog.String(logging.FieldErrorKind, string(providers.Classify(err))),
				slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
				"error", err,
			)
			continue
		}
		if len(list) == 0 {
			providers.LogStage(ctx, logger, slog.LevelInfo, stage.Provider, req, "provider returned no games",
				slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
			)
			continue
		}

		if stage.Post != nil {
			list = stage.Post(ctx, list)
		}
		if c.cache != nil {
			c.cache.Put(key, list, nil)
		}
		if c.lastGood != nil {
			c.lastGood.Set(c.league, name, list)
		}
		providers.LogStage(ctx, logger, slog.LevelInfo, stage.Provider, req, "provider returned games",
			slog.Int(logging.FieldCount, len(list)),
			slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
		)
		return Outcome{Games: list, Provider: name, FetchedAt: c.now()}
	}

	return c.exhausted(logger, date)
}

func (c *Chain) exhausted(logger *slog.Logger, date timeutil.TargetDate) Outcome {
	if c.lastGood != nil {
		if snap, ok := c.lastGood.Get(c.league); ok && len(snap.Games) > 0 {
			c.metrics.RecordFallback(string(c.league))
			logging.Warn(logger, "all providers empty, serving last good snapshot",
				slog.String(logging.FieldLeague, string(c.league)),
				slog.String(logging.FieldProvider, snap.Provider),
				slog.String(logging.FieldDate, date.ISO),
				slog.Int(logging.FieldCount, len(snap.Games)),
			)
			return Outcome{Games: snap.Games, Provider: snap.Provider, FetchedAt: snap.SavedAt, Degraded: true}
		}
	}
	logging.Info(logger, "all providers empty",
		slog.String(logging.FieldLeague, string(c.league)),
		slog.String(logging.FieldDate, date.ISO),
	)
	return Outcome{Games: []games.Game{}}
}
