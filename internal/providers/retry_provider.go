package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
	"github.com/preston-bernstein/scoreboard-service/internal/logging"
)

const (
	defaultRetryAttempts = 2
	defaultBackoff       = 250 * time.Millisecond
)

type backoffFunc func(attempt int) time.Duration

// retryingProvider wraps a Provider with retry/backoff behavior.
type retryingProvider struct {
	inner       Provider
	logger      *slog.Logger
	maxAttempts int
	backoffFn   backoffFunc
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/backoff are <= 0, defaults are used.
// Only failures that Retryable accepts are repeated.
func NewRetryingProvider(inner Provider, logger *slog.Logger, maxAttempts int, backoff time.Duration) Provider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	return &retryingProvider{
		inner:       inner,
		logger:      logger,
		maxAttempts: maxAttempts,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

func (r *retryingProvider) Name() string {
	return r.inner.Name()
}

func (r *retryingProvider) FetchGames(ctx context.Context, req Request) ([]games.Game, error) {
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		list, err := r.inner.FetchGames(ctx, req)
		if err == nil {
			return list, nil
		}
		lastErr = err

		if attempt == r.maxAttempts || !Retryable(err) {
			break
		}

		r.logWarn(ctx, "provider fetch retry",
			"attempt", attempt,
			"max_attempts", r.maxAttempts,
			logging.FieldErrorKind, string(Classify(err)),
			"error", err,
		)

		delay := r.backoffFn(attempt)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	return nil, lastErr
}

func (r *retryingProvider) logWarn(ctx context.Context, msg string, args ...any) {
	logWithProvider(ctx, logging.FromContext(ctx, r.logger), slog.LevelWarn, r.Name(), msg, args...)
}
