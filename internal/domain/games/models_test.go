package games

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/teams"
)

func TestStateValues(t *testing.T) {
	expected := map[State]string{
		StatePre:   "pre",
		StateLive:  "live",
		StateFinal: "final",
	}
	for state, want := range expected {
		if string(state) != want {
			t.Fatalf("expected %q got %q", want, state)
		}
	}
}

func TestGameJSONTags(t *testing.T) {
	gameType := reflect.TypeOf(Game{})
	fields := map[string]string{
		"League":       "league",
		"ID":           "gameId",
		"StartTimeUTC": "startTimeUTC",
		"Status":       "status",
		"Home":         "home",
		"Away":         "away",
		"Source":       "source",
	}
	for name, tag := range fields {
		field, ok := gameType.FieldByName(name)
		if !ok {
			t.Fatalf("missing field %s", name)
		}
		if got := field.Tag.Get("json"); got != tag {
			t.Fatalf("field %s expected json tag %s, got %s", name, tag, got)
		}
	}
}

func TestParseLeague(t *testing.T) {
	l, err := ParseLeague(" NHL ")
	if err != nil || l != LeagueNHL {
		t.Fatalf("expected nhl, got %v %v", l, err)
	}
	if _, err := ParseLeague("cricket"); err == nil {
		t.Fatalf("expected error for unknown league")
	}
}

func TestSortByStartPutsUnknownFirst(t *testing.T) {
	list := []Game{
		{ID: "late", StartTimeUTC: "2025-01-02T03:00:00Z"},
		{ID: "unknown"},
		{ID: "early", StartTimeUTC: "2025-01-01T18:00:00Z"},
	}
	SortByStart(list)
	got := []string{list[0].ID, list[1].ID, list[2].ID}
	want := []string{"unknown", "early", "late"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestMergeLastWriteWins(t *testing.T) {
	first := []Game{{ID: "1", Venue: "old"}, {ID: "2"}}
	merged := Merge(first, Game{ID: "1", Venue: "new"}, Game{ID: "3"})
	if len(merged) != 3 {
		t.Fatalf("expected 3 games, got %d", len(merged))
	}
	if merged[0].ID != "1" || merged[0].Venue != "new" {
		t.Fatalf("expected replacement in place, got %+v", merged[0])
	}
}

func TestNotificationNeverHasNilGames(t *testing.T) {
	n := NewNotification(LeagueNBA, nil)
	raw, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back map[string]any
	_ = json.Unmarshal(raw, &back)
	if _, ok := back["games"].([]any); !ok {
		t.Fatalf("expected games array in payload, got %s", raw)
	}
}

func TestTeamScoreSerializesNull(t *testing.T) {
	g := Game{Home: teams.New("BOS", "Boston", nil)}
	raw, _ := json.Marshal(g.Home)
	if string(raw) != `{"code3":"BOS","name":"Boston","score":null}` {
		t.Fatalf("unexpected team json %s", raw)
	}
}
