package nflweek

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
	"github.com/preston-bernstein/scoreboard-service/internal/logging"
	"github.com/preston-bernstein/scoreboard-service/internal/metrics"
	"github.com/preston-bernstein/scoreboard-service/internal/normalize"
	"github.com/preston-bernstein/scoreboard-service/internal/providers"
	"github.com/preston-bernstein/scoreboard-service/internal/store"
	"github.com/preston-bernstein/scoreboard-service/internal/timeutil"
)

// State names the window a resolution ended up serving.
type State int

const (
	CurrentWeek State = iota
	AdvancedWeek
)

func (s State) String() string {
	if s == AdvancedWeek {
		return "advanced-week"
	}
	return "current-week"
}

// Source is a scoreboard feed that reports event labels and bye teams alongside games.
type Source interface {
	Name() string
	FetchScoreboard(ctx context.Context, req providers.Request) (normalize.Scoreboard, error)
}

// Result is the aggregated week.
type Result struct {
	State      State
	Range      Range
	Games      []games.Game
	TeamsOnBye []string
	Provider   string
	FetchedAt  time.Time
}

// Config wires a Resolver.
type Config struct {
	Source   Source
	Cache    *store.ProviderCache
	Metrics  *metrics.Recorder
	Logger   *slog.Logger
	Location *time.Location
}

// Resolver aggregates an NFL week from per-date scoreboards.
type Resolver struct {
	source  Source
	cache   *store.ProviderCache
	metrics *metrics.Recorder
	logger  *slog.Logger
	loc     *time.Location
	now     func() time.Time
}

// New constructs a Resolver. A nil Location is treated as UTC.
func New(cfg Config) *Resolver {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Resolver{
		source:  cfg.Source,
		cache:   cfg.Cache,
		metrics: cfg.Metrics,
		logger:  cfg.Logger,
		loc:     loc,
		now:     time.Now,
	}
}

// Resolve aggregates the current window and, when the playoff round is over, the next one.
// Upstream failures are logged; the worst outcome is an empty Result.
func (r *Resolver) Resolve(ctx context.Context) Result {
	now := r.now().In(r.loc)
	start := WeekStart(now)

	res := r.aggregate(ctx, RangeFrom(start))
	if ShouldAdvance(now, start, res.Games) {
		next := RangeFrom(start.AddDate(0, 0, 7))
		logging.Info(logging.FromContext(ctx, r.logger), "nfl playoff round complete, advancing week",
			slog.String(logging.FieldLeague, string(games.LeagueNFL)),
			slog.Int(logging.FieldCount, len(res.Games)),
			slog.String("next_start", next.StartISO),
		)
		res = r.aggregate(ctx, next)
		res.State = AdvancedWeek
	}
	res.FetchedAt = r.now()
	return res
}

func (r *Resolver) aggregate(ctx context.Context, rng Range) Result {
	res := Result{State: CurrentWeek, Range: rng, Provider: r.source.Name()}
	var byes []string

	for _, date := range rng.Dates {
		list, dayByes, ok := r.fetchDate(ctx, date)
		if !ok {
			continue
		}
		res.Games = games.Merge(res.Games, list...)
		byes = append(byes, dayByes...)
	}

	if len(res.Games) == 0 {
		if sb, ok := r.fetch(ctx, providers.Request{League: games.LeagueNFL}); ok {
			res.Games = games.Merge(res.Games, sb.Games...)
			byes = append(byes, sb.TeamsOnBye...)
		}
	}

	if res.Games == nil {
		res.Games = []games.Game{}
	}
	games.SortByStart(res.Games)
	res.TeamsOnBye = uniqueSorted(byes)
	return res
}

// fetchDate reads one date, consulting the cache first. Successful reads are cached even
// when the day has no games.
func (r *Resolver) fetchDate(ctx context.Context, date timeutil.TargetDate) ([]games.Game, []string, bool) {
	key := store.CacheKey{Provider: r.source.Name(), League: games.LeagueNFL, Date: date.ISO}
	if r.cache != nil {
		if entry, ok := r.cache.Get(key); ok {
			r.metrics.RecordCacheHit(key.Provider)
			return entry.Games, entry.TeamsOnBye, true
		}
	}

	sb, ok := r.fetch(ctx, providers.Request{League: games.LeagueNFL, Date: date})
	if !ok {
		return nil, nil, false
	}
	if r.cache != nil {
		r.cache.Put(key, sb.Games, sb.TeamsOnBye)
	}
	return sb.Games, sb.TeamsOnBye, true
}

// fetch calls the source and strips all-star exhibitions from the result.
func (r *Resolver) fetch(ctx context.Context, req providers.Request) (normalize.Scoreboard, bool) {
	started := time.Now()
	sb, err := r.source.FetchScoreboard(ctx, req)
	elapsed := time.Since(started)

	logger := logging.FromContext(ctx, r.logger)
	fields := []any{
		slog.String(logging.FieldLeague, string(req.League)),
		slog.String(logging.FieldProvider, r.source.Name()),
		slog.String(logging.FieldDate, req.Date.ISO),
		slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
	}
	if err != nil {
		r.metrics.RecordProviderAttempt(r.source.Name(), elapsed, 0, err)
		logging.Warn(logger, "nfl scoreboard fetch failed",
			append(fields, slog.String(logging.FieldErrorKind, string(providers.Classify(err))), "error", err)...)
		return normalize.Scoreboard{}, false
	}

	kept := make([]games.Game, 0, len(sb.Games))
	for _, g := range sb.Games {
		if IsAllStar(sb.Labels[g.ID], g) {
			continue
		}
		kept = append(kept, g)
	}
	sb.Games = kept
	r.metrics.RecordProviderAttempt(r.source.Name(), elapsed, len(kept), nil)
	return sb, true
}

var allStarMarkers = []string{"pro bowl", "afc vs nfc", "nfc vs afc", "afc vs. nfc", "nfc vs. afc"}

// IsAllStar reports whether an event is the Pro Bowl or another AFC against NFC exhibition,
// judged by its label text or by conference teams standing in for clubs.
func IsAllStar(label string, g games.Game) bool {
	text := strings.ToLower(label)
	for _, m := range allStarMarkers {
		if strings.Contains(text, m) {
			return true
		}
	}
	home, away := g.Home.Code3, g.Away.Code3
	return (home == "AFC" && away == "NFC") || (home == "NFC" && away == "AFC")
}

func uniqueSorted(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
