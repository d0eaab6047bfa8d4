package server

import (
	"context"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
	"github.com/preston-bernstein/scoreboard-service/internal/poller"
)

// Poller defines the acquisition loop behavior the server drives.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
	RunOnce(ctx context.Context) ([]games.Notification, error)
}
