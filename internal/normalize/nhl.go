package normalize

import (
	"github.com/preston-bernstein/scoreboard-service/internal/coerce"
	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
	"github.com/preston-bernstein/scoreboard-service/internal/domain/teams"
)

// NHLScoreboardGames normalizes api-web.nhle.com score and schedule payloads.
func NHLScoreboardGames(payload any, meta Meta) []games.Game {
	events := DiscoverEvents(payload)
	out := make([]games.Game, 0, len(events))
	for _, ev := range events {
		raw := ev.Raw
		status := NHLStatus(
			coerce.FirstText(raw, "gameState", "gameScheduleState"),
			Period{
				Number: intOr(coerce.Path(raw, "periodDescriptor.number"), 0),
				Type:   coerce.FirstText(raw, "periodDescriptor.periodType"),
			},
			coerce.FirstText(raw, "clock.timeRemaining"),
			flag(coerce.Path(raw, "clock.inIntermission")),
		)
		out = append(out, finalize(games.Game{
			League:       meta.League,
			ID:           ev.ID,
			StartTimeUTC: startTime(raw, "startTimeUTC", "gameDate"),
			Status:       status,
			Home:         TeamFrom(raw["homeTeam"]),
			Away:         TeamFrom(raw["awayTeam"]),
			Venue:        coerce.FirstText(raw, "venue"),
			Source:       meta.source(),
		}))
	}
	return out
}

// StatsAPIGames normalizes the legacy statsapi.web.nhl.com schedule payload.
func StatsAPIGames(payload any, meta Meta) []games.Game {
	return statsAPIGames(payload, meta, StatsAPIStatus)
}

// MLBGames normalizes the statsapi.mlb.com schedule payload.
func MLBGames(payload any, meta Meta) []games.Game {
	return statsAPIGames(payload, meta, MLBStatus)
}

// StatsAPI schedules share one layout across sports; only the status block differs.
func statsAPIGames(payload any, meta Meta, statusOf func(any) games.Status) []games.Game {
	events := DiscoverEvents(payload)
	out := make([]games.Game, 0, len(events))
	for _, ev := range events {
		raw := ev.Raw
		home := TeamFrom(coerce.Path(raw, "teams.home"))
		away := TeamFrom(coerce.Path(raw, "teams.away"))
		if home.Shots == nil {
			home.Shots = Shots(coerce.Path(raw, "linescore.teams.home"))
		}
		if away.Shots == nil {
			away.Shots = Shots(coerce.Path(raw, "linescore.teams.away"))
		}
		out = append(out, finalize(games.Game{
			League:       meta.League,
			ID:           ev.ID,
			StartTimeUTC: startTime(raw, "gameDate"),
			Status:       statusOf(raw),
			Home:         home,
			Away:         away,
			Venue:        coerce.FirstText(raw, "venue.name"),
			Source:       meta.source(),
		}))
	}
	return out
}

// NHL franchise ids used by the stats REST API, which reports teams by id only.
var nhlTeamCodes = map[int]string{
	1: "NJD", 2: "NYI", 3: "NYR", 4: "PHI", 5: "PIT", 6: "BOS", 7: "BUF", 8: "MTL",
	9: "OTT", 10: "TOR", 12: "CAR", 13: "FLA", 14: "TBL", 15: "WSH", 16: "CHI",
	17: "DET", 18: "NSH", 19: "STL", 20: "CGY", 21: "COL", 22: "EDM", 23: "VAN",
	24: "ANA", 25: "DAL", 26: "LAK", 28: "SJS", 29: "CBJ", 30: "MIN", 52: "WPG",
	53: "ARI", 54: "VGK", 55: "SEA", 59: "UTA",
}

// NHLStatsRESTGames normalizes the api.nhle.com stats REST game listing.
func NHLStatsRESTGames(payload any, meta Meta) []games.Game {
	events := DiscoverEvents(payload)
	out := make([]games.Game, 0, len(events))
	for _, ev := range events {
		raw := ev.Raw
		status := StatsRESTStatus(
			intOr(coerce.Path(raw, "gameStateId"), 0),
			intOr(coerce.Path(raw, "period"), 0),
			intOr(coerce.Path(raw, "gameType"), 0),
		)
		out = append(out, finalize(games.Game{
			League:       meta.League,
			ID:           ev.ID,
			StartTimeUTC: startTime(raw, "startTimeUTC", "easternStartTime", "gameDate"),
			Status:       status,
			Home:         restTeam(raw, "homeTeam", "homeScore"),
			Away:         restTeam(raw, "visitingTeam", "visitingScore"),
			Venue:        coerce.FirstText(raw, "venue", "venueName"),
			Source:       meta.source(),
		}))
	}
	return out
}

func restTeam(raw map[string]any, prefix, scoreKey string) teams.Team {
	code := coerce.FirstText(raw, prefix+"Abbrev", prefix+".triCode", prefix+".abbrev")
	if code == "" {
		if id, ok := coerce.Int(raw[prefix+"Id"]); ok {
			code = nhlTeamCodes[id]
		}
	}
	return teams.New(code, coerce.FirstText(raw, prefix+"Name", prefix+".fullName"), scoreFrom(raw[scoreKey]))
}

// BoxscoreShots reads per-side shots on goal from an api-web gamecenter boxscore.
func BoxscoreShots(payload any) (home, away *int) {
	return Shots(coerce.Path(payload, "homeTeam")), Shots(coerce.Path(payload, "awayTeam"))
}

func intOr(v any, fallback int) int {
	if n, ok := coerce.Int(v); ok {
		return n
	}
	return fallback
}
