package normalize

import (
	"testing"
)

func ids(events []Event) []string {
	out := make([]string, len(events))
	for i, ev := range events {
		out[i] = ev.ID
	}
	return out
}

func TestDiscoverEventsCandidatePaths(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{"top level array", `[{"id":"1"},{"id":"2"}]`, []string{"1", "2"}},
		{"content schedule", `{"content":{"schedule":{"events":[{"id":"a"}]}}}`, []string{"a"}},
		{"scoreboard events", `{"scoreboard":{"events":[{"gameId":"s1"}]}}`, []string{"s1"}},
		{"statsapi dates", `{"dates":[{"date":"2025-04-01","games":[{"gamePk":745001},{"gamePk":745002}]}]}`, []string{"745001", "745002"}},
		{"game week", `{"gameWeek":[{"date":"2025-10-07","numberOfGames":0},{"date":"2025-10-08","games":[{"id":2025020001}]}]}`, []string{"2025020001"}},
		{"games by date", `{"gamesByDate":{"2025-10-09":[{"id":"x"}],"2025-10-08":[{"id":"w"}]}}`, []string{"w", "x"}},
		{"top level date keys", `{"20251008":{"games":[{"id":"k"}]}}`, []string{"k"}},
		{"thesportsdb", `{"events":[{"idEvent":"9001"}]}`, []string{"9001"}},
		{"null list", `{"events":null}`, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(DiscoverEvents(decode(t, tc.raw)))
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("expected %v, got %v", tc.want, got)
				}
			}
		})
	}
}

func TestDiscoverEventsDedupesAcrossPaths(t *testing.T) {
	raw := `{
		"games": [{"id": 1, "v": "first"}, {"id": 2}],
		"gameWeek": [{"date": "2025-10-08", "games": [{"id": 1, "v": "second"}]}]
	}`
	events := DiscoverEvents(decode(t, raw))
	if len(events) != 2 {
		t.Fatalf("expected 2 unique events, got %v", ids(events))
	}
	if events[0].ID != "1" || events[0].Raw["v"] != "second" {
		t.Fatalf("expected later duplicate to replace earlier in place, got %+v", events[0])
	}
}

func TestDedupeFallsBackToIndex(t *testing.T) {
	events := Dedupe([]any{map[string]any{"name": "no id"}, "not an object", map[string]any{"name": "also none"}})
	if len(events) != 2 || events[0].ID != "idx-0" || events[1].ID != "idx-2" {
		t.Fatalf("expected synthetic index ids, got %v", ids(events))
	}
}
