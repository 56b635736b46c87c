package backend

import (
	"context"
	"log/slog"
	"time"

	"matchday-companion/internal/domain/fixtures"
	"matchday-companion/internal/logging"
	"matchday-companion/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
)

type backoffFunc func(attempt int) time.Duration

// retryingAPI wraps an API with retry/backoff behavior on fixture reads.
// Prediction writes are never retried here: a failed write degrades to a
// durable local-only record instead, and blind retries would race the
// fallback path.
type retryingAPI struct {
	API
	logger      *slog.Logger
	recorder    *metrics.Recorder
	maxAttempts int
	backoffFn   backoffFunc
}

// NewRetryingAPI wraps the given API with read retries. If maxAttempts/backoff
// are <= 0, defaults are used.
func NewRetryingAPI(inner API, logger *slog.Logger, recorder *metrics.Recorder, maxAttempts int, backoff time.Duration) API {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	return &retryingAPI{
		API:         inner,
		logger:      logger,
		recorder:    recorder,
		maxAttempts: maxAttempts,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

func (r *retryingAPI) UpcomingMatches(ctx context.Context) ([]fixtures.Fixture, error) {
	return r.listWithRetry(ctx, "upcoming-matches", r.API.UpcomingMatches)
}

func (r *retryingAPI) PastMatches(ctx context.Context) ([]fixtures.Fixture, error) {
	return r.listWithRetry(ctx, "past-matches", r.API.PastMatches)
}

func (r *retryingAPI) listWithRetry(ctx context.Context, operation string, fetch func(context.Context) ([]fixtures.Fixture, error)) ([]fixtures.Fixture, error) {
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		start := time.Now()
		result, err := fetch(ctx)
		r.recorder.RecordBackendCall(operation, time.Since(start), err)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == r.maxAttempts {
			break
		}

		r.logWarn(ctx, "backend fetch retry", "operation", operation, "attempt", attempt, "max_attempts", r.maxAttempts, "err", err)

		// backoff with context awareness
		delay := r.backoffFn(attempt)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	r.logWarn(ctx, "backend fetch failed", "operation", operation, "attempts", r.maxAttempts, "err", lastErr)
	return nil, lastErr
}

func (r *retryingAPI) logWarn(ctx context.Context, msg string, args ...any) {
	logger := logging.FromContext(ctx, r.logger)
	if logger != nil {
		logger.Warn(msg, args...)
	}
}
