package providers

import (
	"context"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
	"github.com/preston-bernstein/scoreboard-service/internal/timeutil"
)

// Request scopes a single provider call. A zero Date asks the provider for its
// current/default view instead of a specific day.
type Request struct {
	League games.League
	Date   timeutil.TargetDate
}

// HasDate reports whether the request targets a specific day.
func (r Request) HasDate() bool {
	return r.Date.ISO != ""
}

// Provider fetches one upstream source and normalizes it into canonical games.
// Returning zero games with a nil error is a valid outcome, not a failure.
type Provider interface {
	Name() string
	FetchGames(ctx context.Context, req Request) ([]games.Game, error)
}
