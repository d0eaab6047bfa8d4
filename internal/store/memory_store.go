package store

import (
	"context"
	"sync"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
)

// MemoryStore keeps the latest notification per league for the read API.
type MemoryStore struct {
	mu     sync.RWMutex
	latest map[games.League]games.Notification
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		latest: make(map[games.League]games.Notification),
	}
}

// Publish replaces the stored notification for its league. It satisfies the notification sink
// interface so the store can sit behind the same fan-out as live pushes.
func (s *MemoryStore) Publish(ctx context.Context, n games.Notification) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest[n.League] = cloneNotification(n)
	return nil
}

// Latest returns a copy of the most recent notification for league.
func (s *MemoryStore) Latest(league games.League) (games.Notification, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.latest[league]
	if !ok {
		return games.Notification{}, false
	}
	return cloneNotification(n), true
}

// Leagues lists the leagues that have published at least once.
func (s *MemoryStore) Leagues() []games.League {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]games.League, 0, len(s.latest))
	for _, l := range games.AllLeagues {
		if _, ok := s.latest[l]; ok {
			out = append(out, l)
		}
	}
	return out
}

func cloneNotification(n games.Notification) games.Notification {
	n.Games = cloneGames(n.Games)
	if n.TeamsOnBye != nil {
		n.TeamsOnBye = append([]string(nil), n.TeamsOnBye...)
	}
	return n
}

func cloneGames(list []games.Game) []games.Game {
	if list == nil {
		return []games.Game{}
	}
	return append([]games.Game(nil), list...)
}
