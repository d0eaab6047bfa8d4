package providers

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/scoreboard-service/internal/logging"
)

// logWithProvider emits a log entry if logger is non-nil and always includes provider name.
func logWithProvider(ctx context.Context, logger *slog.Logger, level slog.Level, provider string, msg string, args ...any) {
	if logger == nil {
		return
	}
	args = append(args, slog.String(logging.FieldProvider, provider))
	logger.Log(ctx, level, msg, args...)
}

// LogStage logs a provider-stage event with the league, provider and date fields every
// stage log line carries.
func LogStage(ctx context.Context, logger *slog.Logger, level slog.Level, p Provider, req Request, msg string, args ...any) {
	args = append(args,
		slog.String(logging.FieldLeague, string(req.League)),
		slog.String(logging.FieldDate, req.Date.ISO),
	)
	logWithProvider(ctx, logger, level, p.Name(), msg, args...)
}
