// Package mlb reads the statsapi.mlb.com schedule.
package mlb

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
	"github.com/preston-bernstein/scoreboard-service/internal/normalize"
	"github.com/preston-bernstein/scoreboard-service/internal/providers"
)

const (
	BaseURL = "https://statsapi.mlb.com/api/v1"
	Name    = "mlb-statsapi"

	sportMLB = "1"
)

// Config controls how the provider reaches StatsAPI.
type Config struct {
	BaseURL string
	Client  *providers.HTTPClient
}

// Provider fetches the MLB schedule with linescores.
type Provider struct {
	baseURL string
	client  *providers.HTTPClient
	now     func() time.Time
}

// New constructs the MLB provider.
func New(cfg Config) *Provider {
	base := cfg.BaseURL
	if base == "" {
		base = BaseURL
	}
	client := cfg.Client
	if client == nil {
		client = providers.NewHTTPClient(nil, 0)
	}
	return &Provider{
		baseURL: strings.TrimSuffix(base, "/"),
		client:  client,
		now:     time.Now,
	}
}

func (p *Provider) Name() string { return Name }

func (p *Provider) FetchGames(ctx context.Context, req providers.Request) ([]games.Game, error) {
	q := url.Values{}
	q.Set("sportId", sportMLB)
	q.Set("hydrate", "linescore,team,venue")
	if req.HasDate() {
		q.Set("date", req.Date.ISO)
	}
	payload, err := p.client.GetJSON(ctx, Name, p.baseURL+"/schedule?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	return normalize.MLBGames(payload, normalize.Meta{League: games.LeagueMLB, Provider: Name, FetchedAt: p.now()}), nil
}
