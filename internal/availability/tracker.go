// Package availability caches whether upstream hosts are reachable so the
// orchestrator can skip calls that are known to fail.
package availability

import (
	"context"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/singleflight"

	"github.com/preston-bernstein/scoreboard-service/internal/logging"
)

const (
	// DNSTTL bounds how long a reachability verdict is reused before re-probing.
	DNSTTL = 5 * time.Minute
	// BrokenTTL bounds how long an endpoint that answered 404 stays skipped.
	BrokenTTL = 24 * time.Hour

	defaultProbeInterval = 200 * time.Millisecond
	defaultProbeDeadline = 4 * time.Second
)

// Resolver is the subset of net.Resolver the probe needs.
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// Verdict is the tri-state outcome of a reachability check.
type Verdict int

const (
	Unknown Verdict = iota
	Reachable
	Unreachable
)

func (v Verdict) String() string {
	switch v {
	case Reachable:
		return "reachable"
	case Unreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// Record is the cached state for one host. An expired record reads as Unknown.
type Record struct {
	Verdict   Verdict
	CheckedAt time.Time
}

// Config controls probe timing. Zero values select the defaults.
type Config struct {
	Resolver      Resolver
	Logger        *slog.Logger
	ProbeInterval time.Duration
	ProbeDeadline time.Duration
}

// Tracker holds per-host DNS verdicts and per-endpoint broken markers.
// It is safe for concurrent use; concurrent probes of the same host share one lookup.
type Tracker struct {
	resolver Resolver
	logger   *slog.Logger
	interval time.Duration
	deadline time.Duration
	now      func() time.Time

	mu     sync.RWMutex
	hosts  map[string]Record
	broken map[string]time.Time

	probes singleflight.Group
}

// New constructs a Tracker. A nil resolver uses net.DefaultResolver.
func New(cfg Config) *Tracker {
	t := &Tracker{
		resolver: cfg.Resolver,
		logger:   cfg.Logger,
		interval: cfg.ProbeInterval,
		deadline: cfg.ProbeDeadline,
		now:      time.Now,
		hosts:    make(map[string]Record),
		broken:   make(map[string]time.Time),
	}
	if t.resolver == nil {
		t.resolver = net.DefaultResolver
	}
	if t.interval <= 0 {
		t.interval = defaultProbeInterval
	}
	if t.deadline <= 0 {
		t.deadline = defaultProbeDeadline
	}
	return t
}

// IsAvailable reports whether host resolved within the last DNSTTL, probing when the
// cached verdict is missing or stale. Probe failures only affect the returned value.
func (t *Tracker) IsAvailable(ctx context.Context, host string) bool {
	if rec := t.Status(host); rec.Verdict != Unknown {
		return rec.Verdict == Reachable
	}

	v, _, _ := t.probes.Do(host, func() (any, error) {
		if rec := t.Status(host); rec.Verdict != Unknown {
			return rec.Verdict == Reachable, nil
		}
		ok := t.probe(ctx, host)
		t.mu.Lock()
		t.hosts[host] = Record{Verdict: verdictOf(ok), CheckedAt: t.now()}
		t.mu.Unlock()
		return ok, nil
	})
	ok, _ := v.(bool)
	return ok
}

// Status returns the cached record for host without probing.
func (t *Tracker) Status(host string) Record {
	t.mu.RLock()
	rec, ok := t.hosts[host]
	t.mu.RUnlock()
	if !ok || t.now().Sub(rec.CheckedAt) >= DNSTTL {
		return Record{Verdict: Unknown}
	}
	return rec
}

// MarkBroken records that key (typically an endpoint URL or host) answered 404.
func (t *Tracker) MarkBroken(key string) {
	t.mu.Lock()
	t.broken[key] = t.now()
	t.mu.Unlock()
	logging.Warn(t.logger, "endpoint marked broken",
		logging.FieldHost, key,
		"ttl", BrokenTTL.String(),
	)
}

// IsBroken reports whether key was marked broken within the last BrokenTTL.
// Expired markers are dropped on read.
func (t *Tracker) IsBroken(key string) bool {
	t.mu.RLock()
	at, ok := t.broken[key]
	t.mu.RUnlock()
	if !ok {
		return false
	}
	if t.now().Sub(at) < BrokenTTL {
		return true
	}
	t.mu.Lock()
	if cur, ok := t.broken[key]; ok && cur.Equal(at) {
		delete(t.broken, key)
	}
	t.mu.Unlock()
	return false
}

// probe retries the lookup every interval until it succeeds or the deadline elapses.
// It runs detached from the caller's cancellation so a shared probe is not cut short
// by whichever caller started it.
func (t *Tracker) probe(ctx context.Context, host string) bool {
	probeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), t.deadline)
	defer cancel()

	attempts := 0
	err := backoff.Retry(func() error {
		attempts++
		_, err := t.resolver.LookupHost(probeCtx, host)
		return err
	}, backoff.WithContext(backoff.NewConstantBackOff(t.interval), probeCtx))
	if err != nil {
		logging.Warn(t.logger, "host unreachable",
			logging.FieldHost, host,
			"attempts", attempts,
			"error", err,
		)
		return false
	}
	return true
}

func verdictOf(ok bool) Verdict {
	if ok {
		return Reachable
	}
	return Unreachable
}
