package games

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/teams"
	"github.com/preston-bernstein/scoreboard-service/internal/timeutil"
)

// League identifies a supported competition.
type League string

const (
	LeagueMLB            League = "mlb"
	LeagueNHL            League = "nhl"
	LeagueNFL            League = "nfl"
	LeagueNBA            League = "nba"
	LeagueOlympicMHockey League = "olympic_mhockey"
	LeagueOlympicWHockey League = "olympic_whockey"
)

// AllLeagues lists every supported league in polling order.
var AllLeagues = []League{
	LeagueMLB,
	LeagueNHL,
	LeagueNFL,
	LeagueNBA,
	LeagueOlympicMHockey,
	LeagueOlympicWHockey,
}

// ParseLeague maps a configuration string onto a League.
func ParseLeague(raw string) (League, error) {
	key := League(strings.ToLower(strings.TrimSpace(raw)))
	for _, l := range AllLeagues {
		if l == key {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown league %q", raw)
}

// State is the three-valued lifecycle every provider status collapses to.
type State string

const (
	StatePre   State = "pre"
	StateLive  State = "live"
	StateFinal State = "final"
)

// Status carries the canonical state plus the provider-derived display strings.
type Status struct {
	State  State  `json:"state"`
	Detail string `json:"detail,omitempty"`
	Period string `json:"period,omitempty"`
	Clock  string `json:"clock,omitempty"`
}

// Source records which provider produced a game and when.
type Source struct {
	Provider     string `json:"provider"`
	FetchedAtUTC string `json:"fetchedAtUTC"`
}

// Game is the canonical, provider-agnostic game record.
type Game struct {
	League       League     `json:"league"`
	ID           string     `json:"gameId"`
	StartTimeUTC string     `json:"startTimeUTC"`
	Status       Status     `json:"status"`
	Home         teams.Team `json:"home"`
	Away         teams.Team `json:"away"`
	Venue        string     `json:"venue,omitempty"`
	Source       Source     `json:"source"`
}

// StartTime parses StartTimeUTC; ok is false when the start time is unknown.
func (g Game) StartTime() (time.Time, bool) {
	return timeutil.ParseTimestamp(g.StartTimeUTC)
}

// SortByStart orders games by start time ascending. Games without a resolvable start
// time sort first; ties keep their input order.
func SortByStart(list []Game) {
	sort.SliceStable(list, func(i, j int) bool {
		ti, okI := list[i].StartTime()
		tj, okJ := list[j].StartTime()
		switch {
		case !okI && !okJ:
			return false
		case !okI:
			return true
		case !okJ:
			return false
		default:
			return ti.Before(tj)
		}
	})
}

// Merge appends incoming games onto base, replacing any game whose ID is already present
// in place (last write wins) so the result holds each ID once.
func Merge(base []Game, incoming ...Game) []Game {
	index := make(map[string]int, len(base)+len(incoming))
	out := make([]Game, 0, len(base)+len(incoming))
	for _, g := range append(append([]Game(nil), base...), incoming...) {
		if i, ok := index[g.ID]; ok {
			out[i] = g
			continue
		}
		index[g.ID] = len(out)
		out = append(out, g)
	}
	return out
}

// Notification is the single push message emitted per league per tick.
type Notification struct {
	League       League   `json:"league"`
	Games        []Game   `json:"games"`
	Provider     string   `json:"provider,omitempty"`
	FetchedAtUTC string   `json:"fetchedAtUTC,omitempty"`
	Count        int      `json:"count"`
	Degraded     bool     `json:"degraded,omitempty"`
	TeamsOnBye   []string `json:"teamsOnBye,omitempty"`
	Date         string   `json:"date,omitempty"`
}

// NewNotification builds a Notification, normalizing a nil slice to empty.
func NewNotification(league League, list []Game) Notification {
	if list == nil {
		list = []Game{}
	}
	return Notification{League: league, Games: list, Count: len(list)}
}
