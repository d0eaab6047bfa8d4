package testutil

import (
	"context"
	"sync/atomic"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
	"github.com/preston-bernstein/scoreboard-service/internal/providers"
)

// StubProvider returns fixed games or a fixed error and counts calls.
type StubProvider struct {
	NameVal string
	Games   []games.Game
	Err     error

	calls    atomic.Int32
	lastDate atomic.Value
}

func (p *StubProvider) Name() string {
	if p.NameVal == "" {
		return "stub"
	}
	return p.NameVal
}

func (p *StubProvider) FetchGames(ctx context.Context, req providers.Request) ([]games.Game, error) {
	p.calls.Add(1)
	p.lastDate.Store(req.Date.ISO)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.Err != nil {
		return nil, p.Err
	}
	return append([]games.Game{}, p.Games...), nil
}

// Calls reports how many fetches were made.
func (p *StubProvider) Calls() int { return int(p.calls.Load()) }

// LastDate returns the ISO date of the most recent request.
func (p *StubProvider) LastDate() string {
	v, _ := p.lastDate.Load().(string)
	return v
}
