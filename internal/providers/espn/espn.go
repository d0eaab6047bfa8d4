// Package espn reads site.api.espn.com scoreboards.
package espn

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
	"github.com/preston-bernstein/scoreboard-service/internal/normalize"
	"github.com/preston-bernstein/scoreboard-service/internal/providers"
)

const BaseURL = "https://site.api.espn.com/apis/site/v2/sports"

var leaguePaths = map[games.League]string{
	games.LeagueNFL:            "football/nfl",
	games.LeagueNBA:            "basketball/nba",
	games.LeagueNHL:            "hockey/nhl",
	games.LeagueMLB:            "baseball/mlb",
	games.LeagueOlympicMHockey: "hockey/olympics-mens-ice-hockey",
	games.LeagueOlympicWHockey: "hockey/olympics-womens-ice-hockey",
}

var regulation = map[games.League]int{
	games.LeagueNFL:            normalize.FootballRegulation,
	games.LeagueNBA:            normalize.BasketballRegulation,
	games.LeagueNHL:            normalize.HockeyRegulation,
	games.LeagueMLB:            normalize.BaseballRegulation,
	games.LeagueOlympicMHockey: normalize.HockeyRegulation,
	games.LeagueOlympicWHockey: normalize.HockeyRegulation,
}

// Config controls how the provider reaches ESPN.
type Config struct {
	BaseURL string
	Client  *providers.HTTPClient
}

// Provider reads one league's scoreboard.
type Provider struct {
	league  games.League
	baseURL string
	client  *providers.HTTPClient
	now     func() time.Time
}

// New constructs a scoreboard provider for league.
func New(league games.League, cfg Config) *Provider {
	base := cfg.BaseURL
	if base == "" {
		base = BaseURL
	}
	client := cfg.Client
	if client == nil {
		client = providers.NewHTTPClient(nil, 0)
	}
	return &Provider{
		league:  league,
		baseURL: strings.TrimSuffix(base, "/"),
		client:  client,
		now:     time.Now,
	}
}

func (p *Provider) Name() string { return "espn-" + string(p.league) }

// FetchScoreboard returns the normalized scoreboard, including labels and bye teams.
// A request without a date reads ESPN's current scoreboard.
func (p *Provider) FetchScoreboard(ctx context.Context, req providers.Request) (normalize.Scoreboard, error) {
	path, ok := leaguePaths[p.league]
	if !ok {
		return normalize.Scoreboard{}, fmt.Errorf("espn: unsupported league %q", p.league)
	}
	target := fmt.Sprintf("%s/%s/scoreboard", p.baseURL, path)
	if req.HasDate() {
		target += "?dates=" + req.Date.Compact
	}

	payload, err := p.client.GetJSON(ctx, p.Name(), target, nil)
	if err != nil {
		return normalize.Scoreboard{}, err
	}
	meta := normalize.Meta{League: p.league, Provider: p.Name(), FetchedAt: p.now()}
	return normalize.ESPNScoreboard(payload, meta, regulation[p.league]), nil
}

func (p *Provider) FetchGames(ctx context.Context, req providers.Request) ([]games.Game, error) {
	sb, err := p.FetchScoreboard(ctx, req)
	if err != nil {
		return nil, err
	}
	return sb.Games, nil
}
