package orchestrator

import (
	"context"

	"github.com/preston-bernstein/scoreboard-service/internal/availability"
	"github.com/preston-bernstein/scoreboard-service/internal/providers"
)

// Gate decides whether a stage may be called and learns from the outcome when it is.
type Gate interface {
	Allow(ctx context.Context) bool
	Observe(err error)
}

// DNSGate admits a stage only while its upstream host resolves.
type DNSGate struct {
	Tracker *availability.Tracker
	Host    string
}

func (g DNSGate) Allow(ctx context.Context) bool {
	if g.Tracker == nil || g.Host == "" {
		return true
	}
	return g.Tracker.IsAvailable(ctx, g.Host)
}

func (DNSGate) Observe(error) {}

// BrokenGate skips a stage for a day once its endpoint has answered 404.
type BrokenGate struct {
	Tracker *availability.Tracker
	Key     string
}

func (g BrokenGate) Allow(context.Context) bool {
	if g.Tracker == nil {
		return true
	}
	return !g.Tracker.IsBroken(g.Key)
}

func (g BrokenGate) Observe(err error) {
	if g.Tracker != nil && providers.IsNotFound(err) {
		g.Tracker.MarkBroken(g.Key)
	}
}
