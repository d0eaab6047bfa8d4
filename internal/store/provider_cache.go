package store

import (
	"sync"
	"time"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
)

const (
	// DefaultCacheTTL is used when no TTL is configured.
	DefaultCacheTTL = 20 * time.Second
	// MinCacheTTL is the floor applied to configured TTLs.
	MinCacheTTL = 15 * time.Second
)

// CacheKey identifies one provider result.
type CacheKey struct {
	Provider string
	League   games.League
	Date     string
}

// CacheEntry is one cached provider result.
type CacheEntry struct {
	SavedAt    time.Time
	Games      []games.Game
	TeamsOnBye []string
}

// ProviderCache is a short-TTL cache of provider results. Expired entries are treated as
// absent; they are never served stale.
type ProviderCache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[CacheKey]CacheEntry
}

// NewProviderCache constructs a cache. ttl <= 0 selects DefaultCacheTTL; smaller values are
// raised to MinCacheTTL.
func NewProviderCache(ttl time.Duration) *ProviderCache {
	switch {
	case ttl <= 0:
		ttl = DefaultCacheTTL
	case ttl < MinCacheTTL:
		ttl = MinCacheTTL
	}
	return &ProviderCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[CacheKey]CacheEntry),
	}
}

// TTL reports the effective TTL.
func (c *ProviderCache) TTL() time.Duration {
	return c.ttl
}

// Get returns a copy of a live entry. Expired entries are evicted.
func (c *ProviderCache) Get(key CacheKey) (CacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return CacheEntry{}, false
	}
	if c.now().Sub(entry.SavedAt) >= c.ttl {
		delete(c.entries, key)
		return CacheEntry{}, false
	}
	return copyEntry(entry), true
}

// Put stores a copy of list and byes under key, stamped with the current time.
func (c *ProviderCache) Put(key CacheKey, list []games.Game, byes []string) {
	entry := copyEntry(CacheEntry{Games: list, TeamsOnBye: byes})
	entry.SavedAt = c.now()

	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
}

func copyEntry(e CacheEntry) CacheEntry {
	e.Games = cloneGames(e.Games)
	if e.TeamsOnBye != nil {
		e.TeamsOnBye = append([]string(nil), e.TeamsOnBye...)
	}
	return e
}
