package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
	"github.com/preston-bernstein/scoreboard-service/internal/logging"
	"github.com/preston-bernstein/scoreboard-service/internal/metrics"
)

const (
	defaultInterval = 30 * time.Second
	// MinInterval is the shortest accepted tick.
	MinInterval = 10 * time.Second
)

// ErrCycleInProgress is returned by RunOnce while another cycle is still running.
var ErrCycleInProgress = errors.New("poller: cycle already in progress")

// Fetcher produces one league's notification per call.
type Fetcher interface {
	Fetch(ctx context.Context, league games.League) (games.Notification, error)
}

// Sink receives every notification the loop produces.
type Sink interface {
	Publish(ctx context.Context, n games.Notification) error
}

// Poller runs a fetch cycle over its leagues on an interval and publishes the results.
type Poller struct {
	fetcher  Fetcher
	sink     Sink
	leagues  []games.League
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool
	wg       sync.WaitGroup
	inFlight atomic.Bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller. A non-positive interval selects the default; shorter intervals
// are raised to MinInterval.
func New(fetcher Fetcher, sink Sink, leagues []games.League, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Poller {
	switch {
	case interval <= 0:
		interval = defaultInterval
	case interval < MinInterval:
		interval = MinInterval
	}
	return &Poller{
		fetcher:  fetcher,
		sink:     sink,
		leagues:  append([]games.League(nil), leagues...),
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start runs a cycle immediately and then on every tick until the context is cancelled or
// Stop is called. A tick that fires while the previous cycle is still running is skipped.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		logging.Info(p.logger, "poller started",
			slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()),
			slog.Int(logging.FieldCount, len(p.leagues)),
		)
		// Initial cycle to warm data on boot.
		p.tick(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.ticker.C:
				p.wg.Add(1)
				go func() {
					defer p.wg.Done()
					p.tick(ctx)
				}()
			}
		}
	}()
}

// Stop halts the loop and waits for a running cycle to finish or ctx to expire.
func (p *Poller) Stop(ctx context.Context) error {
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})

	finished := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Poller) tick(ctx context.Context) {
	if _, err := p.RunOnce(ctx); errors.Is(err, ErrCycleInProgress) {
		p.metrics.RecordSkippedTick()
		logging.Warn(p.logger, "poller tick skipped, previous cycle still running")
	}
}

// RunOnce fetches every league in order and publishes each notification. A league that
// fails or panics yields an empty notification and does not stop the cycle. The returned
// error joins the per-league failures.
func (p *Poller) RunOnce(ctx context.Context) ([]games.Notification, error) {
	if !p.inFlight.CompareAndSwap(false, true) {
		return nil, ErrCycleInProgress
	}
	defer p.inFlight.Store(false)

	start := time.Now()
	p.recordAttempt(start)

	out := make([]games.Notification, 0, len(p.leagues))
	var errs []error
	for _, league := range p.leagues {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		n, err := p.fetchLeague(ctx, league)
		if err != nil {
			errs = append(errs, err)
		}
		out = append(out, n)
		p.publish(ctx, n)
	}

	err := errors.Join(errs...)
	elapsed := time.Since(start)
	p.metrics.RecordPollerCycle(elapsed, err)
	if err != nil {
		p.recordFailure(err, start)
	} else {
		p.recordSuccess(start)
	}
	logging.Info(p.logger, "poller cycle complete",
		slog.Int(logging.FieldCount, len(out)),
		slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
	)
	return out, err
}

func (p *Poller) fetchLeague(ctx context.Context, league games.League) (n games.Notification, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("poller: %s: panic: %v", league, r)
			n = games.NewNotification(league, nil)
			logging.Error(p.logger, "league fetch panicked", err, slog.String(logging.FieldLeague, string(league)))
		}
	}()

	n, err = p.fetcher.Fetch(ctx, league)
	if err != nil {
		logging.Error(p.logger, "league fetch failed", err, slog.String(logging.FieldLeague, string(league)))
		return games.NewNotification(league, nil), err
	}
	if n.Games == nil {
		n.Games = []games.Game{}
	}
	n.League = league
	n.Count = len(n.Games)

	logging.Info(p.logger, "league refreshed",
		slog.String(logging.FieldLeague, string(league)),
		slog.String(logging.FieldProvider, n.Provider),
		slog.Int(logging.FieldCount, n.Count),
		slog.Bool("degraded", n.Degraded),
		slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
	)
	return n, nil
}

func (p *Poller) publish(ctx context.Context, n games.Notification) {
	if p.sink == nil {
		return
	}
	if err := p.sink.Publish(ctx, n); err != nil {
		logging.Error(p.logger, "notification publish failed", err, slog.String(logging.FieldLeague, string(n.League)))
	}
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}

// Leagues returns the leagues polled each cycle.
func (p *Poller) Leagues() []games.League {
	return append([]games.League(nil), p.leagues...)
}
