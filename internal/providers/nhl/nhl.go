// Package nhl implements the three NHL schedule sources: the legacy StatsAPI, the public
// api-web scoreboard and the stats REST API.
package nhl

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/preston-bernstein/scoreboard-service/internal/normalize"
	"github.com/preston-bernstein/scoreboard-service/internal/providers"
)

const (
	LegacyBaseURL     = "https://statsapi.web.nhl.com/api/v1"
	ScoreboardBaseURL = "https://api-web.nhle.com/v1"
	StatsRESTBaseURL  = "https://api.nhle.com/stats/rest/en"

	LegacyName     = "nhl-statsapi"
	ScoreboardName = "nhl-scoreboard"
	StatsRESTName  = "nhl-stats-rest"

	webOrigin = "https://www.nhl.com"
)

// Config controls how a provider reaches its upstream. An empty BaseURL selects the
// production endpoint.
type Config struct {
	BaseURL string
	Client  *providers.HTTPClient
	Logger  *slog.Logger
}

type base struct {
	baseURL string
	client  *providers.HTTPClient
	logger  *slog.Logger
	now     func() time.Time
}

func newBase(cfg Config, fallbackURL string) base {
	client := cfg.Client
	if client == nil {
		client = providers.NewHTTPClient(nil, 0)
	}
	return base{
		baseURL: normalizeBaseURL(cfg.BaseURL, fallbackURL),
		client:  client,
		logger:  cfg.Logger,
		now:     time.Now,
	}
}

func (b base) meta(req providers.Request, name string) normalize.Meta {
	return normalize.Meta{League: req.League, Provider: name, FetchedAt: b.now()}
}

// Host returns the upstream hostname the provider depends on.
func (b base) Host() string {
	u, err := url.Parse(b.baseURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

func normalizeBaseURL(raw, fallback string) string {
	if raw == "" {
		raw = fallback
	}
	return strings.TrimSuffix(raw, "/")
}

func webHeaders() http.Header {
	return providers.BrowserHeaders(webOrigin)
}
