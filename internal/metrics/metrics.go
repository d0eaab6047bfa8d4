package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	empties         int
	cacheHits       int
	skips           int
	lastCallLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about provider calls and fallbacks,
// mirroring them to OpenTelemetry instruments when configured.
type Recorder struct {
	mu        sync.Mutex
	stats     map[string]*providerStats
	fallbacks map[string]int
	skipped   int
	otel      *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:     make(map[string]*providerStats),
		fallbacks: make(map[string]int),
		otel:      otel,
	}
}

// RecordProviderAttempt counts a provider call. count is the number of games it produced.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, count int, err error) {
	if r == nil {
		return
	}

	outcome := OutcomeGames
	r.mu.Lock()
	stats := r.ensureStatsLocked(provider)
	stats.calls++
	stats.lastCallLatency = duration
	switch {
	case err != nil:
		stats.errors++
		outcome = OutcomeError
	case count == 0:
		stats.empties++
		outcome = OutcomeEmpty
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, outcome)
	}
}

// RecordCacheHit counts a provider result served from the short-TTL cache.
func (r *Recorder) RecordCacheHit(provider string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.ensureStatsLocked(provider).cacheHits++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordCacheHit(provider)
	}
}

// RecordProviderSkip counts a provider skipped because its host was marked unavailable.
func (r *Recorder) RecordProviderSkip(provider string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.ensureStatsLocked(provider).skips++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordSkip(provider)
	}
}

// RecordFallback counts a league served from its last-good snapshot.
func (r *Recorder) RecordFallback(league string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.fallbacks[league]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordFallback(league)
	}
}

// RecordSkippedTick counts a poller tick dropped because the previous one was still running.
func (r *Recorder) RecordSkippedTick() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.skipped++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordSkippedTick()
	}
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// Fallbacks returns how many times a league was served its last-good snapshot.
func (r *Recorder) Fallbacks(league string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fallbacks[league]
}

// SkippedTicks returns the number of overlapping ticks dropped.
func (r *Recorder) SkippedTicks() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.skipped
}

// Snapshot returns a copy of the current stats for the provider.
type Snapshot struct {
	Calls           int
	Errors          int
	Empties         int
	CacheHits       int
	Skips           int
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		Empties:         stats.empties,
		CacheHits:       stats.cacheHits,
		Skips:           stats.skips,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordPollerCycle tracks poller cycles and errors.
func (r *Recorder) RecordPollerCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordPoller(duration, err)
}

func (r *Recorder) ensureStatsLocked(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}
