package normalize

import (
	"sort"
	"strings"

	"github.com/preston-bernstein/scoreboard-service/internal/coerce"
	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
	"github.com/preston-bernstein/scoreboard-service/internal/domain/teams"
)

const maxResultsDepth = 24

var (
	sportPaths      = []string{"sport", "discipline", "disciplineName", "sportName", "discipline.description", "discipline.name"}
	divisionPaths   = []string{"gender", "division", "eventName", "event.name", "event.description", "description", "name"}
	competitorPaths = []string{"competitors", "teams", "participants"}
)

// ResultsEntries normalizes the JSON state embedded in a results page. It walks the tree for
// ice hockey units of the given division and dedupes them by id.
func ResultsEntries(payload any, meta Meta, div Division) []games.Game {
	var units []any
	collectUnits(payload, div, &units, 0)

	events := Dedupe(units)
	out := make([]games.Game, 0, len(events))
	for _, ev := range events {
		raw := ev.Raw
		home, away := resultSides(raw)
		out = append(out, finalize(games.Game{
			League:       meta.League,
			ID:           ev.ID,
			StartTimeUTC: startTime(raw, "startDate", "startTime", "start", "scheduledStart", "date"),
			Status:       ResultsStatus(coerce.FirstText(raw, "status", "statusCode", "eventStatus", "status.code")),
			Home:         home,
			Away:         away,
			Venue:        coerce.FirstText(raw, "venue.description", "venue.name", "location.description", "venueDescription"),
			Source:       meta.source(),
		}))
	}
	return out
}

func collectUnits(v any, div Division, out *[]any, depth int) {
	if depth > maxResultsDepth {
		return
	}
	switch n := v.(type) {
	case map[string]any:
		if isHockeyUnit(n) {
			if d, ok := MatchDivision(coerce.FirstText(n, divisionPaths...)); ok && d == div {
				*out = append(*out, n)
			}
			return
		}
		keys := make([]string, 0, len(n))
		for k := range n {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			collectUnits(n[k], div, out, depth+1)
		}
	case []any:
		for _, item := range n {
			collectUnits(item, div, out, depth+1)
		}
	}
}

func isHockeyUnit(n map[string]any) bool {
	if !strings.EqualFold(coerce.FirstText(n, sportPaths...), "ice hockey") {
		return false
	}
	return competitors(n) != nil
}

func competitors(n map[string]any) []any {
	for _, p := range competitorPaths {
		if arr := coerce.Array(n[p]); len(arr) > 0 {
			return arr
		}
	}
	return nil
}

func resultSides(n map[string]any) (home, away teams.Team) {
	var homeNode, awayNode any
	list := competitors(n)
	for _, c := range list {
		switch strings.ToLower(coerce.FirstText(c, "homeAway", "side")) {
		case "home":
			homeNode = c
		case "away":
			awayNode = c
		}
	}
	if homeNode == nil && len(list) > 0 {
		homeNode = list[0]
	}
	if awayNode == nil && len(list) > 1 {
		awayNode = list[1]
	}
	return TeamFrom(homeNode), TeamFrom(awayNode)
}
