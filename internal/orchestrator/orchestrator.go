package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
	"github.com/preston-bernstein/scoreboard-service/internal/nflweek"
	"github.com/preston-bernstein/scoreboard-service/internal/timeutil"
)

// ErrLeagueNotConfigured is returned for a league no fetcher was registered for.
var ErrLeagueNotConfigured = errors.New("orchestrator: league not configured")

// LeagueFetcher produces a league's notification for one cycle.
type LeagueFetcher interface {
	Fetch(ctx context.Context, date timeutil.TargetDate) games.Notification
}

// Orchestrator resolves the target date and dispatches to the league's fetcher.
type Orchestrator struct {
	fetchers map[games.League]LeagueFetcher
	order    []games.League
	loc      *time.Location
	now      func() time.Time
}

// New constructs an empty Orchestrator. A nil loc is treated as UTC.
func New(loc *time.Location) *Orchestrator {
	if loc == nil {
		loc = time.UTC
	}
	return &Orchestrator{
		fetchers: make(map[games.League]LeagueFetcher),
		loc:      loc,
		now:      time.Now,
	}
}

// Register installs the fetcher for league, replacing any earlier one.
func (o *Orchestrator) Register(league games.League, f LeagueFetcher) {
	if _, ok := o.fetchers[league]; !ok {
		o.order = append(o.order, league)
	}
	o.fetchers[league] = f
}

// Leagues lists registered leagues in registration order.
func (o *Orchestrator) Leagues() []games.League {
	return append([]games.League(nil), o.order...)
}

// Fetch runs one cycle for league against today's target date.
func (o *Orchestrator) Fetch(ctx context.Context, league games.League) (games.Notification, error) {
	f, ok := o.fetchers[league]
	if !ok {
		return games.NewNotification(league, nil), fmt.Errorf("%w: %s", ErrLeagueNotConfigured, league)
	}
	return f.Fetch(ctx, timeutil.ResolveTargetDate(o.loc, o.now())), nil
}

// ChainFetcher adapts a Chain to LeagueFetcher.
type ChainFetcher struct {
	Chain *Chain
}

func (f ChainFetcher) Fetch(ctx context.Context, date timeutil.TargetDate) games.Notification {
	out := f.Chain.Run(ctx, date)
	n := games.NewNotification(f.Chain.league, out.Games)
	n.Provider = out.Provider
	n.FetchedAtUTC = formatFetchedAt(out.FetchedAt)
	n.Degraded = out.Degraded
	n.Date = date.ISO
	return n
}

// WeekFetcher adapts the NFL week resolver to LeagueFetcher. The target date is ignored;
// the week window is derived from the resolver's own clock.
type WeekFetcher struct {
	Resolver *nflweek.Resolver
}

func (f WeekFetcher) Fetch(ctx context.Context, _ timeutil.TargetDate) games.Notification {
	res := f.Resolver.Resolve(ctx)
	n := games.NewNotification(games.LeagueNFL, res.Games)
	n.Provider = res.Provider
	n.FetchedAtUTC = formatFetchedAt(res.FetchedAt)
	n.TeamsOnBye = res.TeamsOnBye
	n.Date = res.Range.StartISO
	return n
}

func formatFetchedAt(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
