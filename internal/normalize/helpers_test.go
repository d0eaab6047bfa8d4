package normalize

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
)

var fetchedAt = time.Date(2026, 2, 14, 18, 0, 0, 0, time.UTC)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return v
}

func meta(league games.League, provider string) Meta {
	return Meta{League: league, Provider: provider, FetchedAt: fetchedAt}
}

func assertCanonical(t *testing.T, list []games.Game) {
	t.Helper()
	for _, g := range list {
		for _, team := range []string{g.Home.Code3, g.Away.Code3} {
			if len([]rune(team)) > 3 {
				t.Fatalf("game %s has code %q longer than 3", g.ID, team)
			}
			for _, r := range team {
				if r >= 'a' && r <= 'z' {
					t.Fatalf("game %s has lower-case code %q", g.ID, team)
				}
			}
		}
		switch g.Status.State {
		case games.StatePre, games.StateLive, games.StateFinal:
		default:
			t.Fatalf("game %s has state %q", g.ID, g.Status.State)
		}
	}
}
