package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
)

// StubFetcher is a test double for poller.Fetcher.
type StubFetcher struct {
	// Games is returned for every league not listed in Panics or Errs.
	Games  []games.Game
	Errs   map[games.League]error
	Panics map[games.League]bool
	Calls  atomic.Int32
	Notify chan struct{}
	// Block, when set, holds every Fetch until it is closed.
	Block chan struct{}
}

// Fetch returns the configured games for league while tracking calls.
func (s *StubFetcher) Fetch(ctx context.Context, league games.League) (games.Notification, error) {
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
	if s.Block != nil {
		select {
		case <-s.Block:
		case <-ctx.Done():
		}
	}
	if s.Panics[league] {
		panic("stub fetch panic for " + string(league))
	}
	if err := s.Errs[league]; err != nil {
		return games.NewNotification(league, nil), err
	}
	list := make([]games.Game, 0, len(s.Games))
	for _, g := range s.Games {
		g.League = league
		list = append(list, g)
	}
	return games.NewNotification(league, list), nil
}

// StubSink is a test double for poller.Sink.
type StubSink struct {
	Err error

	mu        sync.Mutex
	published []games.Notification
}

// Publish records the notification for verification in tests.
func (s *StubSink) Publish(_ context.Context, n games.Notification) error {
	s.mu.Lock()
	s.published = append(s.published, n)
	s.mu.Unlock()
	return s.Err
}

// Published returns the notifications seen so far.
func (s *StubSink) Published() []games.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]games.Notification(nil), s.published...)
}
