package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
)

// Streams are trimmed to roughly this many entries.
const defaultStreamMaxLen = 1000

// StreamAdder is the subset of a redis client the publisher needs.
type StreamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// RedisPublisher appends every notification to a per-league Redis stream named
// "<prefix>.<league>".
type RedisPublisher struct {
	client StreamAdder
	prefix string
	maxLen int64
}

// NewRedisPublisher constructs a publisher writing under prefix.
func NewRedisPublisher(client StreamAdder, prefix string) *RedisPublisher {
	return &RedisPublisher{client: client, prefix: prefix, maxLen: defaultStreamMaxLen}
}

// StreamKey returns the stream a league's notifications are written to.
func (p *RedisPublisher) StreamKey(league games.League) string {
	return fmt.Sprintf("%s.%s", p.prefix, league)
}

func (p *RedisPublisher) Publish(ctx context.Context, n games.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("notify: marshaling notification: %w", err)
	}

	err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.StreamKey(n.League),
		MaxLen: p.maxLen,
		Approx: true,
		Values: map[string]interface{}{
			"data":     string(data),
			"league":   string(n.League),
			"count":    strconv.Itoa(n.Count),
			"provider": n.Provider,
			"degraded": strconv.FormatBool(n.Degraded),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("notify: xadd %s: %w", p.StreamKey(n.League), err)
	}
	return nil
}
