package testutil

import (
	"time"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
	"github.com/preston-bernstein/scoreboard-service/internal/domain/teams"
)

// SampleStart is the start time every sample game is scheduled around.
var SampleStart = time.Date(2026, 2, 14, 17, 0, 0, 0, time.UTC)

// SampleGame returns a minimal scheduled game fixture with the provided id.
func SampleGame(league games.League, id string) games.Game {
	return games.Game{
		League:       league,
		ID:           id,
		StartTimeUTC: SampleStart.Format(time.RFC3339),
		Status:       games.Status{State: games.StatePre},
		Home:         teams.New("HOM", "Home", nil),
		Away:         teams.New("AWY", "Away", nil),
		Source:       games.Source{Provider: "test"},
	}
}

// SampleNotification builds a notification carrying one sample game per id.
func SampleNotification(league games.League, ids ...string) games.Notification {
	list := make([]games.Game, 0, len(ids))
	for _, id := range ids {
		list = append(list, SampleGame(league, id))
	}
	n := games.NewNotification(league, list)
	n.Provider = "test"
	return n
}
