package store

import (
	"testing"
	"time"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
)

func TestNewProviderCacheClampsTTL(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want time.Duration
	}{
		{0, DefaultCacheTTL},
		{-time.Second, DefaultCacheTTL},
		{time.Second, MinCacheTTL},
		{time.Minute, time.Minute},
	}
	for _, tc := range cases {
		if got := NewProviderCache(tc.in).TTL(); got != tc.want {
			t.Fatalf("NewProviderCache(%s).TTL() = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestProviderCacheExpiresEntries(t *testing.T) {
	now := time.Date(2025, 10, 1, 20, 0, 0, 0, time.UTC)
	c := NewProviderCache(20 * time.Second)
	c.now = func() time.Time { return now }

	key := CacheKey{Provider: "nhl-scoreboard", League: games.LeagueNHL, Date: "2025-10-01"}
	c.Put(key, []games.Game{{ID: "2025020001"}}, nil)

	now = now.Add(19 * time.Second)
	entry, ok := c.Get(key)
	if !ok || len(entry.Games) != 1 {
		t.Fatalf("expected live entry, got %+v %v", entry, ok)
	}

	now = now.Add(time.Second)
	if _, ok := c.Get(key); ok {
		t.Fatalf("expected expired entry to be absent")
	}
	if _, ok := c.entries[key]; ok {
		t.Fatalf("expected expired entry to be evicted")
	}
}

func TestProviderCacheKeysAreIndependent(t *testing.T) {
	c := NewProviderCache(time.Minute)
	day := CacheKey{Provider: "espn-nfl", League: games.LeagueNFL, Date: "2025-10-02"}
	c.Put(day, []games.Game{{ID: "a"}}, []string{"KC"})

	if _, ok := c.Get(CacheKey{Provider: "espn-nfl", League: games.LeagueNFL, Date: "2025-10-03"}); ok {
		t.Fatalf("expected different date to miss")
	}
	if _, ok := c.Get(CacheKey{Provider: "espn-nhl", League: games.LeagueNFL, Date: "2025-10-02"}); ok {
		t.Fatalf("expected different provider to miss")
	}
	entry, ok := c.Get(day)
	if !ok || len(entry.TeamsOnBye) != 1 || entry.TeamsOnBye[0] != "KC" {
		t.Fatalf("expected byes to round-trip, got %+v", entry)
	}
}

func TestProviderCacheCopiesOnPutAndGet(t *testing.T) {
	c := NewProviderCache(time.Minute)
	key := CacheKey{Provider: "mlb-statsapi", League: games.LeagueMLB, Date: "2025-10-01"}
	list := []games.Game{{ID: "1", Venue: "Fenway"}}
	c.Put(key, list, nil)
	list[0].Venue = "changed"

	entry, _ := c.Get(key)
	entry.Games[0].Venue = "changed again"

	again, _ := c.Get(key)
	if again.Games[0].Venue != "Fenway" {
		t.Fatalf("expected cache to hold its own copy, got %s", again.Games[0].Venue)
	}
}
