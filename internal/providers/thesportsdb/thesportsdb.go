// Package thesportsdb reads TheSportsDB events-by-day feed for Olympic ice hockey.
package thesportsdb

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
	"github.com/preston-bernstein/scoreboard-service/internal/normalize"
	"github.com/preston-bernstein/scoreboard-service/internal/providers"
	"github.com/preston-bernstein/scoreboard-service/internal/timeutil"
)

const (
	BaseURL = "https://www.thesportsdb.com/api/v1/json"
	Name    = "thesportsdb"

	// Public test key published by TheSportsDB for low-volume use.
	defaultAPIKey = "3"
	sportParam    = "Ice_Hockey"
)

// Config controls how the provider reaches TheSportsDB.
type Config struct {
	BaseURL string
	APIKey  string
	Client  *providers.HTTPClient
}

// Provider returns one division's Olympic games for a day.
type Provider struct {
	division normalize.Division
	baseURL  string
	apiKey   string
	client   *providers.HTTPClient
	now      func() time.Time
}

// New constructs a provider for the given division.
func New(division normalize.Division, cfg Config) *Provider {
	base := cfg.BaseURL
	if base == "" {
		base = BaseURL
	}
	key := cfg.APIKey
	if key == "" {
		key = defaultAPIKey
	}
	client := cfg.Client
	if client == nil {
		client = providers.NewHTTPClient(nil, 0)
	}
	return &Provider{
		division: division,
		baseURL:  strings.TrimSuffix(base, "/"),
		apiKey:   key,
		client:   client,
		now:      time.Now,
	}
}

func (p *Provider) Name() string { return Name }

func (p *Provider) FetchGames(ctx context.Context, req providers.Request) ([]games.Game, error) {
	day := req.Date.ISO
	if !req.HasDate() {
		day = timeutil.FormatDate(p.now().UTC())
	}
	q := url.Values{}
	q.Set("d", day)
	q.Set("s", sportParam)
	target := p.baseURL + "/" + url.PathEscape(p.apiKey) + "/eventsday.php?" + q.Encode()

	payload, err := p.client.GetJSON(ctx, Name, target, nil)
	if err != nil {
		return nil, err
	}
	meta := normalize.Meta{League: req.League, Provider: Name, FetchedAt: p.now()}
	return normalize.SportsDBEvents(payload, meta, p.division), nil
}
