// Package syncer runs the periodic reconciliation loop: on an interval it
// asks the sync engine to push pending local-only predictions to the backend.
package syncer

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"matchday-companion/internal/logging"
	enginesync "matchday-companion/internal/sync"
)

const defaultInterval = 60 * time.Second

// Engine is the slice of the sync engine the loop drives.
type Engine interface {
	AutoSync(ctx context.Context) (enginesync.AutoSyncResult, error)
}

// Syncer reconciles pending predictions on an interval and tracks the recent
// health of those attempts.
type Syncer struct {
	engine   Engine
	logger   *slog.Logger
	interval time.Duration
	now      func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the sync loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	LastSynced          int
	Offline             bool
}

// IsReady reports whether the loop has had a recent success and is not
// failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Syncer with sane defaults.
func New(engine Engine, logger *slog.Logger, interval time.Duration) *Syncer {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Syncer{
		engine:   engine,
		logger:   logger,
		interval: interval,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start begins syncing until the context is cancelled or Stop is called.
func (s *Syncer) Start(ctx context.Context) {
	s.startMu.Lock()
	if s.started {
		s.startMu.Unlock()
		return
	}
	s.started = true
	s.startMu.Unlock()

	s.ticker = time.NewTicker(s.interval)

	go func() {
		s.logInfo("syncer started", slog.Int64(logging.FieldDurationMS, s.interval.Milliseconds()))
		// Initial pass to flush anything queued while the process was down.
		s.syncOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				s.stopTicker()
				s.logInfo("syncer stopped")
				return
			case <-s.done:
				s.stopTicker()
				s.logInfo("syncer stopped")
				return
			case <-s.ticker.C:
				s.syncOnce(ctx)
			}
		}
	}()
}

// Stop halts the sync loop.
func (s *Syncer) Stop(ctx context.Context) error {
	_ = ctx
	s.stopOnce.Do(func() {
		close(s.done)
		s.stopTicker()
	})
	return nil
}

// SyncNow runs one reconciliation pass outside the schedule, for the manual
// "sync now" action.
func (s *Syncer) SyncNow(ctx context.Context) (enginesync.AutoSyncResult, error) {
	return s.runSync(ctx)
}

func (s *Syncer) syncOnce(ctx context.Context) {
	if _, err := s.runSync(ctx); err != nil && !errors.Is(err, enginesync.ErrNotConnected) {
		s.logError("scheduled sync failed", err)
	}
}

func (s *Syncer) runSync(ctx context.Context) (enginesync.AutoSyncResult, error) {
	start := time.Now()
	s.recordAttempt(start)

	result, err := s.engine.AutoSync(ctx)
	if err != nil {
		s.recordFailure(err, start)
		return result, err
	}

	s.recordSuccess(result.Predictions.Synced, start)
	if result.Predictions.Total > 0 {
		s.logInfo("predictions reconciled",
			slog.Int("synced", result.Predictions.Synced),
			slog.Int("total", result.Predictions.Total),
			slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
		)
	}
	return result, nil
}

func (s *Syncer) stopTicker() {
	if s.ticker != nil {
		s.ticker.Stop()
	}
}

func (s *Syncer) logInfo(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s *Syncer) logError(msg string, err error, attrs ...any) {
	if s.logger != nil {
		s.logger.Error(msg, append(attrs, "error", err)...)
	}
}

func (s *Syncer) recordAttempt(at time.Time) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.LastAttempt = at
}

func (s *Syncer) recordSuccess(synced int, at time.Time) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.ConsecutiveFailures = 0
	s.status.LastError = ""
	s.status.LastSuccess = at
	s.status.LastSynced = synced
	s.status.Offline = false
}

func (s *Syncer) recordFailure(err error, at time.Time) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.ConsecutiveFailures++
	if err != nil {
		s.status.LastError = err.Error()
	}
	s.status.LastAttempt = at
	s.status.Offline = errors.Is(err, enginesync.ErrNotConnected)
}

// Status returns a snapshot of the loop's recent health.
func (s *Syncer) Status() Status {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()
	return s.status
}
