package normalize

import (
	"regexp"
	"strings"

	"github.com/preston-bernstein/scoreboard-service/internal/coerce"
	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
	"github.com/preston-bernstein/scoreboard-service/internal/domain/teams"
)

// Division selects the men's or women's tournament.
type Division string

const (
	DivisionMen   Division = "men"
	DivisionWomen Division = "women"
)

var (
	womenLabel = regexp.MustCompile(`\b(women|womens|women's|female|ladies)\b`)
	menLabel   = regexp.MustCompile(`\b(men|mens|men's|male)\b`)
)

// MatchDivision finds the tournament a label refers to. Gender words only count as whole
// words, so "tournament" carries no division.
func MatchDivision(label string) (Division, bool) {
	t := strings.ToLower(strings.TrimSpace(label))
	switch {
	case t == "":
		return "", false
	case t == "w" || t == "f" || womenLabel.MatchString(t):
		return DivisionWomen, true
	case t == "m" || menLabel.MatchString(t):
		return DivisionMen, true
	}
	return "", false
}

// SportsDBEvents normalizes a TheSportsDB eventsday payload, keeping Olympic ice hockey
// events of the given division.
func SportsDBEvents(payload any, meta Meta, div Division) []games.Game {
	events := DiscoverEvents(payload)
	out := make([]games.Game, 0, len(events))
	for _, ev := range events {
		raw := ev.Raw
		if !isOlympicHockey(raw) {
			continue
		}
		if d, ok := MatchDivision(coerce.FirstText(raw, "strLeague") + " " + coerce.FirstText(raw, "strEvent")); !ok || d != div {
			continue
		}

		start := startTime(raw, "strTimestamp")
		if start == "" {
			start = utcTimestamp(coerce.FirstText(raw, "dateEvent") + "T" + coerce.FirstText(raw, "strTime"))
		}

		out = append(out, finalize(games.Game{
			League:       meta.League,
			ID:           ev.ID,
			StartTimeUTC: start,
			Status:       SportsDBStatus(coerce.FirstText(raw, "strStatus", "strProgress")),
			Home:         teams.New("", coerce.FirstText(raw, "strHomeTeam"), scoreFrom(raw["intHomeScore"])),
			Away:         teams.New("", coerce.FirstText(raw, "strAwayTeam"), scoreFrom(raw["intAwayScore"])),
			Venue:        coerce.FirstText(raw, "strVenue"),
			Source:       meta.source(),
		}))
	}
	return out
}

func isOlympicHockey(raw map[string]any) bool {
	sport := strings.ToLower(coerce.FirstText(raw, "strSport"))
	if sport != "" && sport != "ice hockey" {
		return false
	}
	return strings.Contains(strings.ToLower(coerce.FirstText(raw, "strLeague")), "olympic")
}
