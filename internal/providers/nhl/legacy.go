package nhl

import (
	"context"
	"net/url"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
	"github.com/preston-bernstein/scoreboard-service/internal/normalize"
	"github.com/preston-bernstein/scoreboard-service/internal/providers"
)

// LegacyProvider reads statsapi.web.nhl.com. The host has been retired upstream more than
// once, so callers gate it on a DNS probe of Host().
type LegacyProvider struct {
	base
}

// NewLegacy constructs the legacy StatsAPI provider.
func NewLegacy(cfg Config) *LegacyProvider {
	return &LegacyProvider{base: newBase(cfg, LegacyBaseURL)}
}

func (p *LegacyProvider) Name() string { return LegacyName }

func (p *LegacyProvider) FetchGames(ctx context.Context, req providers.Request) ([]games.Game, error) {
	q := url.Values{}
	q.Set("expand", "schedule.linescore,schedule.teams")
	if req.HasDate() {
		q.Set("date", req.Date.ISO)
	}
	payload, err := p.client.GetJSON(ctx, LegacyName, p.baseURL+"/schedule?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	return normalize.StatsAPIGames(payload, p.meta(req, LegacyName)), nil
}
