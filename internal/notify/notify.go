// Package notify delivers league notifications to downstream consumers.
package notify

import (
	"context"
	"errors"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
)

// Sink receives one notification per league per cycle.
type Sink interface {
	Publish(ctx context.Context, n games.Notification) error
}

// Fanout publishes to every sink in order. A failing sink does not stop the others.
type Fanout []Sink

// NewFanout drops nil sinks.
func NewFanout(sinks ...Sink) Fanout {
	out := make(Fanout, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (f Fanout) Publish(ctx context.Context, n games.Notification) error {
	var errs []error
	for _, s := range f {
		if err := s.Publish(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
