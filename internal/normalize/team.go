package normalize

import (
	"strings"

	"github.com/preston-bernstein/scoreboard-service/internal/coerce"
	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
	"github.com/preston-bernstein/scoreboard-service/internal/domain/teams"
)

var teamCodePaths = []string{
	"abbrev",
	"abbreviation",
	"triCode",
	"teamAbbrev",
	"noc",
	"countryCode",
	"code",
	"team.abbreviation",
	"team.abbrev",
	"team.triCode",
	"organisation.code",
}

var teamNamePaths = []string{
	"displayName",
	"name",
	"teamName",
	"commonName",
	"fullName",
	"shortDisplayName",
	"placeName",
	"team.displayName",
	"team.name",
	"team.teamName",
	"organisation.description",
	"description",
}

var teamScorePaths = []string{
	"score",
	"goals",
	"runs",
	"points",
	"result.mark",
	"results.mark",
	"team.score",
}

var (
	shotBases  = []string{"", "stats", "teamStats", "teamSkaterStats"}
	shotFields = []string{"shotsOnGoal", "sog", "shots", "shotsTotal"}
)

// shotExtractors lists every shots-on-goal synonym, flat fields first, then the
// name/value rows of a statistics array.
var shotExtractors = append(
	coerce.NumberPaths(shotBases, shotFields),
	statisticsRow(shotFields...),
)

// TeamFrom reads one side of a game. A nil node yields an empty Team; a missing score or
// shot count stays nil.
func TeamFrom(node any) teams.Team {
	team := teams.New(
		coerce.FirstText(node, teamCodePaths...),
		coerce.FirstText(node, teamNamePaths...),
		textPtr(coerce.FirstText(node, teamScorePaths...)),
	)
	team.Shots = Shots(node)
	return team
}

// Shots returns the first shots-on-goal synonym on node that parses as a finite number.
func Shots(node any) *int {
	v, ok := coerce.First(node, shotExtractors...)
	if !ok {
		return nil
	}
	n := int(v)
	return &n
}

// statisticsRow matches ESPN-style [{"name": "...", "displayValue": "..."}] arrays.
func statisticsRow(names ...string) coerce.Extractor[float64] {
	return func(node any) (float64, bool) {
		for _, row := range coerce.Array(coerce.Path(node, "statistics")) {
			name := coerce.Text(coerce.Path(row, "name"))
			for _, want := range names {
				if strings.EqualFold(name, want) {
					return coerce.Number(row)
				}
			}
		}
		return 0, false
	}
}

func textPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// scoreFrom formats a numeric score node, or nil when it is absent.
func scoreFrom(v any) *string {
	n, ok := coerce.Int(v)
	if !ok {
		return nil
	}
	return textPtr(coerce.Text(float64(n)))
}

// finalize clears scores of games that have not started; feeds often report 0-0.
func finalize(g games.Game) games.Game {
	if g.Status.State == games.StatePre {
		g.Home.Score = nil
		g.Away.Score = nil
	}
	return g
}
