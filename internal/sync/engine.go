// Package sync owns the read/write path for fixtures and predictions: every
// read prefers the server and degrades to the local cache, every write
// prefers the server and degrades to a durable local-only record, and
// reconciliation pushes local-only records back once the backend is
// reachable.
package sync

import (
	"context"
	"log/slog"
	"time"

	"matchday-companion/internal/backend"
	"matchday-companion/internal/domain/fixtures"
	"matchday-companion/internal/domain/leaderboard"
	"matchday-companion/internal/domain/predictions"
	"matchday-companion/internal/metrics"
)

// Cache is the slice of the cache repository the engine reads and writes.
type Cache interface {
	Fixtures(key string) ([]fixtures.Fixture, bool, error)
	ReplaceFixtures(key string, items []fixtures.Fixture) error
	Predictions() (predictions.Map, error)
	ReplacePredictions(m predictions.Map) error
	UpsertPrediction(p predictions.Prediction) error
	Leaderboard() ([]leaderboard.Entry, bool, error)
	ReplaceLeaderboard(entries []leaderboard.Entry) error
	ClearData() error
}

// TokenStore is the external auth collaborator. The engine reads the
// credential and clears it on a 401; it never installs one.
type TokenStore interface {
	Token() (string, bool)
	Clear() error
	UserID() (int, bool)
}

// Prober reports backend reachability ahead of a reconciliation pass.
type Prober interface {
	Check(ctx context.Context) bool
}

// Engine coordinates the backend, the local cache, and the auth store.
type Engine struct {
	api      backend.API
	cache    Cache
	auth     TokenStore
	prober   Prober
	logger   *slog.Logger
	recorder *metrics.Recorder
	now      func() time.Time
}

// New constructs a sync engine.
func New(api backend.API, cache Cache, auth TokenStore, prober Prober, logger *slog.Logger, recorder *metrics.Recorder) *Engine {
	return &Engine{
		api:      api,
		cache:    cache,
		auth:     auth,
		prober:   prober,
		logger:   logger,
		recorder: recorder,
		now:      time.Now,
	}
}

// ClearLocalData wipes all cached collections while preserving the stored
// credential.
func (e *Engine) ClearLocalData() error {
	return e.cache.ClearData()
}

func (e *Engine) logWarn(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Warn(msg, args...)
	}
}

func (e *Engine) logError(msg string, err error, args ...any) {
	if e.logger != nil {
		if err != nil {
			args = append(args, "error", err)
		}
		e.logger.Error(msg, args...)
	}
}
