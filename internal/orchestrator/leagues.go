package orchestrator

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/scoreboard-service/internal/availability"
	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
	"github.com/preston-bernstein/scoreboard-service/internal/metrics"
	"github.com/preston-bernstein/scoreboard-service/internal/nflweek"
	"github.com/preston-bernstein/scoreboard-service/internal/normalize"
	"github.com/preston-bernstein/scoreboard-service/internal/providers"
	"github.com/preston-bernstein/scoreboard-service/internal/providers/espn"
	"github.com/preston-bernstein/scoreboard-service/internal/providers/mlb"
	"github.com/preston-bernstein/scoreboard-service/internal/providers/nhl"
	"github.com/preston-bernstein/scoreboard-service/internal/providers/olympics"
	"github.com/preston-bernstein/scoreboard-service/internal/providers/thesportsdb"
	"github.com/preston-bernstein/scoreboard-service/internal/store"
)

// Endpoints overrides upstream base URLs. Empty fields select production.
type Endpoints struct {
	NHLLegacy         string
	NHLScoreboard     string
	NHLStatsREST      string
	ESPN              string
	MLB               string
	TheSportsDB       string
	OlympicResultsURL string
}

// Deps carries the shared state every league fetcher is built from.
type Deps struct {
	Leagues       []games.League
	Client        *providers.HTTPClient
	Tracker       *availability.Tracker
	Cache         *store.ProviderCache
	LastGood      *store.LastGood
	Metrics       *metrics.Recorder
	Logger        *slog.Logger
	Location      *time.Location
	RetryAttempts int
	Endpoints     Endpoints
}

// Build assembles an Orchestrator with a fetcher for each selected league.
func Build(d Deps) *Orchestrator {
	if d.Client == nil {
		d.Client = providers.NewHTTPClient(nil, 0)
	}
	if d.Tracker == nil {
		d.Tracker = availability.New(availability.Config{Logger: d.Logger})
	}
	if d.Cache == nil {
		d.Cache = store.NewProviderCache(0)
	}
	if d.LastGood == nil {
		d.LastGood = store.NewLastGood()
	}

	o := New(d.Location)
	for _, league := range d.Leagues {
		switch league {
		case games.LeagueNHL:
			o.Register(league, ChainFetcher{Chain: nhlChain(d)})
		case games.LeagueOlympicMHockey:
			o.Register(league, ChainFetcher{Chain: olympicChain(d, league, normalize.DivisionMen)})
		case games.LeagueOlympicWHockey:
			o.Register(league, ChainFetcher{Chain: olympicChain(d, league, normalize.DivisionWomen)})
		case games.LeagueMLB:
			o.Register(league, ChainFetcher{Chain: mlbChain(d)})
		case games.LeagueNBA:
			o.Register(league, ChainFetcher{Chain: nbaChain(d)})
		case games.LeagueNFL:
			o.Register(league, WeekFetcher{Resolver: nflResolver(d)})
		}
	}
	return o
}

func sortOnly(_ context.Context, list []games.Game) []games.Game {
	games.SortByStart(list)
	return list
}

func nhlChain(d Deps) *Chain {
	cfg := func(base string) nhl.Config {
		return nhl.Config{BaseURL: base, Client: d.Client, Logger: d.Logger}
	}
	legacy := nhl.NewLegacy(cfg(d.Endpoints.NHLLegacy))
	scoreboard := nhl.NewScoreboard(cfg(d.Endpoints.NHLScoreboard))
	rest := nhl.NewStatsREST(cfg(d.Endpoints.NHLStatsREST))

	hydrate := func(ctx context.Context, list []games.Game) []games.Game {
		list = scoreboard.Hydrate(ctx, list)
		games.SortByStart(list)
		return list
	}

	return NewChain(ChainConfig{
		League: games.LeagueNHL,
		Stages: []Stage{
			{Provider: legacy, Gate: DNSGate{Tracker: d.Tracker, Host: legacy.Host()}, Post: hydrate},
			{Provider: scoreboard, Post: hydrate},
			{Provider: rest, Gate: BrokenGate{Tracker: d.Tracker, Key: rest.BrokenKey()}, Post: hydrate},
		},
		Cache:    d.Cache,
		LastGood: d.LastGood,
		Metrics:  d.Metrics,
		Logger:   d.Logger,
	})
}

func olympicChain(d Deps, league games.League, division normalize.Division) *Chain {
	results := olympics.NewResults(division, olympics.ResultsConfig{
		URL:      d.Endpoints.OlympicResultsURL,
		Client:   d.Client,
		Logger:   d.Logger,
		Location: d.Location,
	})
	return NewChain(ChainConfig{
		League: league,
		Stages: []Stage{
			{Provider: espn.New(league, espn.Config{BaseURL: d.Endpoints.ESPN, Client: d.Client}), Post: sortOnly},
			{Provider: olympics.NewOlympicsCom()},
			{Provider: olympics.NewIIHF()},
			{Provider: thesportsdb.New(division, thesportsdb.Config{BaseURL: d.Endpoints.TheSportsDB, Client: d.Client}), Post: sortOnly},
			{Provider: olympics.NewWikipediaFinals()},
			{Provider: results, Post: sortOnly},
		},
		Cache:    d.Cache,
		LastGood: d.LastGood,
		Metrics:  d.Metrics,
		Logger:   d.Logger,
	})
}

func mlbChain(d Deps) *Chain {
	inner := mlb.New(mlb.Config{BaseURL: d.Endpoints.MLB, Client: d.Client})
	return NewChain(ChainConfig{
		League:  games.LeagueMLB,
		Stages:  []Stage{{Provider: providers.NewRetryingProvider(inner, d.Logger, d.RetryAttempts, 0)}},
		Cache:   d.Cache,
		Metrics: d.Metrics,
		Logger:  d.Logger,
	})
}

func nbaChain(d Deps) *Chain {
	inner := espn.New(games.LeagueNBA, espn.Config{BaseURL: d.Endpoints.ESPN, Client: d.Client})
	return NewChain(ChainConfig{
		League: games.LeagueNBA,
		Stages: []Stage{{
			Provider: providers.NewRetryingProvider(inner, d.Logger, d.RetryAttempts, 0),
			Post:     sortOnly,
		}},
		Cache:   d.Cache,
		Metrics: d.Metrics,
		Logger:  d.Logger,
	})
}

func nflResolver(d Deps) *nflweek.Resolver {
	return nflweek.New(nflweek.Config{
		Source:   espn.New(games.LeagueNFL, espn.Config{BaseURL: d.Endpoints.ESPN, Client: d.Client}),
		Cache:    d.Cache,
		Metrics:  d.Metrics,
		Logger:   d.Logger,
		Location: d.Location,
	})
}
