package store

import (
	"sync"
	"time"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
)

// Snapshot is the most recent non-empty result for a league.
type Snapshot struct {
	Games    []games.Game
	Provider string
	SavedAt  time.Time
}

// LastGood retains, per league, the last non-empty game list for the process lifetime.
type LastGood struct {
	now func() time.Time

	mu    sync.RWMutex
	snaps map[games.League]Snapshot
}

// NewLastGood constructs an empty store.
func NewLastGood() *LastGood {
	return &LastGood{
		now:   time.Now,
		snaps: make(map[games.League]Snapshot),
	}
}

// Set overwrites the snapshot for league when list is non-empty. It reports whether it wrote.
func (l *LastGood) Set(league games.League, provider string, list []games.Game) bool {
	if len(list) == 0 {
		return false
	}
	snap := Snapshot{Games: cloneGames(list), Provider: provider, SavedAt: l.now()}

	l.mu.Lock()
	l.snaps[league] = snap
	l.mu.Unlock()
	return true
}

// Get returns a copy of the snapshot for league, if one was ever recorded.
func (l *LastGood) Get(league games.League) (Snapshot, bool) {
	l.mu.RLock()
	snap, ok := l.snaps[league]
	l.mu.RUnlock()
	if !ok {
		return Snapshot{}, false
	}
	snap.Games = cloneGames(snap.Games)
	return snap, true
}
