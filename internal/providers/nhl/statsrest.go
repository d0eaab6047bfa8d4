package nhl

import (
	"context"
	"fmt"
	"net/url"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
	"github.com/preston-bernstein/scoreboard-service/internal/normalize"
	"github.com/preston-bernstein/scoreboard-service/internal/providers"
	"github.com/preston-bernstein/scoreboard-service/internal/timeutil"
)

// StatsRESTProvider reads the api.nhle.com stats REST game listing. The endpoint sometimes
// answers 404 for weeks at a time; callers gate it on BrokenKey.
type StatsRESTProvider struct {
	base
}

// NewStatsREST constructs the stats REST provider.
func NewStatsREST(cfg Config) *StatsRESTProvider {
	return &StatsRESTProvider{base: newBase(cfg, StatsRESTBaseURL)}
}

func (p *StatsRESTProvider) Name() string { return StatsRESTName }

// BrokenKey identifies the endpoint for the 404 circuit breaker.
func (p *StatsRESTProvider) BrokenKey() string {
	return p.baseURL + "/game"
}

func (p *StatsRESTProvider) FetchGames(ctx context.Context, req providers.Request) ([]games.Game, error) {
	date := req.Date.ISO
	if !req.HasDate() {
		date = timeutil.FormatDate(p.now().UTC())
	}
	q := url.Values{}
	q.Set("cayenneExp", fmt.Sprintf("gameDate=%q", date))
	payload, err := p.client.GetJSON(ctx, StatsRESTName, p.BrokenKey()+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	return normalize.NHLStatsRESTGames(payload, p.meta(req, StatsRESTName)), nil
}
