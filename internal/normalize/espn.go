package normalize

import (
	"sort"
	"strings"

	"github.com/preston-bernstein/scoreboard-service/internal/coerce"
	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
	"github.com/preston-bernstein/scoreboard-service/internal/domain/teams"
)

// Scoreboard is a normalized ESPN scoreboard response.
type Scoreboard struct {
	Games []games.Game
	// Labels holds each event's display text (name, short name, note headlines) by game id.
	Labels map[string]string
	// TeamsOnBye lists bye-week abbreviations, upper-cased and sorted.
	TeamsOnBye []string
}

// ESPNScoreboard normalizes a site.api.espn.com scoreboard payload.
func ESPNScoreboard(payload any, meta Meta, regulation int) Scoreboard {
	events := DiscoverEvents(payload)
	sb := Scoreboard{
		Games:      make([]games.Game, 0, len(events)),
		Labels:     make(map[string]string, len(events)),
		TeamsOnBye: ByeTeams(payload),
	}
	for _, ev := range events {
		g := ESPNEvent(ev.Raw, meta, regulation)
		if g.ID == "" {
			g.ID = ev.ID
		}
		sb.Games = append(sb.Games, g)
		sb.Labels[g.ID] = eventLabel(ev.Raw)
	}
	return sb
}

// ESPNEvent normalizes one scoreboard event. Competitors are matched by homeAway and fall
// back to ESPN's home-first ordering.
func ESPNEvent(ev map[string]any, meta Meta, regulation int) games.Game {
	comp := coerce.Path(ev, "competitions.0")
	var home, away any
	competitors := coerce.Array(coerce.Path(comp, "competitors"))
	for _, c := range competitors {
		switch strings.ToLower(coerce.Text(coerce.Path(c, "homeAway"))) {
		case "home":
			home = c
		case "away":
			away = c
		}
	}
	if home == nil && len(competitors) > 0 {
		home = competitors[0]
	}
	if away == nil && len(competitors) > 1 {
		away = competitors[1]
	}

	status := coerce.Path(comp, "status")
	if status == nil {
		status = coerce.Path(ev, "status")
	}

	return finalize(games.Game{
		League:       meta.League,
		ID:           EventID(ev),
		StartTimeUTC: startTime(ev, "date", "competitions.0.date", "competitions.0.startDate"),
		Status:       ESPNStatus(status, regulation),
		Home:         TeamFrom(home),
		Away:         TeamFrom(away),
		Venue:        coerce.FirstText(comp, "venue.fullName", "venue.shortName"),
		Source:       meta.source(),
	})
}

// ByeTeams returns the week.teamsOnBye abbreviations of an NFL scoreboard.
func ByeTeams(payload any) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, t := range coerce.Array(coerce.Path(payload, "week.teamsOnBye")) {
		code := strings.ToUpper(coerce.FirstText(t, "abbreviation", "team.abbreviation"))
		if code == "" {
			code = teams.Code3("", coerce.FirstText(t, "displayName", "name"))
		}
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

func eventLabel(ev map[string]any) string {
	parts := []string{
		coerce.Text(ev["name"]),
		coerce.Text(ev["shortName"]),
	}
	for _, note := range coerce.Array(coerce.Path(ev, "competitions.0.notes")) {
		parts = append(parts, coerce.Text(coerce.Path(note, "headline")))
	}
	return strings.Join(nonEmpty(parts), " | ")
}

func nonEmpty(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
