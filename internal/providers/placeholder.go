package providers

import (
	"context"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
)

// Placeholder is a chain stage with no upstream integration. It always yields zero games and
// is indistinguishable, to the orchestrator, from a source that had nothing that day.
type Placeholder struct {
	name string
}

// NewPlaceholder returns an always-empty provider named name.
func NewPlaceholder(name string) *Placeholder {
	return &Placeholder{name: name}
}

func (p *Placeholder) Name() string { return p.name }

func (p *Placeholder) FetchGames(context.Context, Request) ([]games.Game, error) {
	return nil, nil
}
