package sync

import (
	"context"
	"time"

	"matchday-companion/internal/backend"
	"matchday-companion/internal/domain/predictions"
)

// SyncResult reports a reconciliation pass. Partial success is expected:
// Synced counts promoted entries, Total the pending entries found.
type SyncResult struct {
	Synced int `json:"synced_count"`
	Total  int `json:"total_count"`
}

// SyncPredictions pushes every local-only prediction to the backend,
// promoting each to server-confirmed on acceptance. With nothing pending it
// succeeds trivially. If the connectivity probe reports the backend
// unreachable it returns ErrNotConnected without attempting any write.
// Entries are pushed sequentially; one rejection does not abort the rest,
// and rejected entries stay local-only. The collection is written back to
// the cache once, after the loop.
func (e *Engine) SyncPredictions(ctx context.Context) (SyncResult, error) {
	start := time.Now()

	token, ok := e.auth.Token()
	if !ok {
		return SyncResult{}, ErrAuthRequired
	}

	current, err := e.cache.Predictions()
	if err != nil {
		return SyncResult{}, err
	}
	pending := current.LocalOnly()
	if len(pending) == 0 {
		return SyncResult{}, nil
	}

	result := SyncResult{Total: len(pending)}
	if !e.prober.Check(ctx) {
		e.recorder.RecordSyncCycle(time.Since(start), 0, result.Total, ErrNotConnected)
		return result, ErrNotConnected
	}

	updated := current.Clone()
	var authErr error
	for _, p := range pending {
		saved, pushErr := e.pushPrediction(ctx, token, p)
		if pushErr != nil {
			if backend.IsAuthExpired(pushErr) {
				// The remaining entries would hit the same wall; stop here,
				// leave them local-only, and force a fresh login.
				if clearErr := e.auth.Clear(); clearErr != nil {
					e.logError("clearing expired credential failed", clearErr)
				}
				authErr = ErrAuthExpired
				break
			}
			e.logWarn("prediction sync failed", "match_id", p.MatchID, "error", pushErr)
			continue
		}

		if saved.MatchID == 0 {
			saved.MatchID = p.MatchID
		}
		saved.Origin = predictions.OriginServerConfirmed
		updated[saved.MatchID] = saved
		result.Synced++
	}

	if err := e.cache.ReplacePredictions(updated); err != nil {
		e.logError("writing reconciled predictions failed", err)
		e.recorder.RecordSyncCycle(time.Since(start), result.Synced, result.Total, err)
		return result, err
	}

	e.recorder.RecordSyncCycle(time.Since(start), result.Synced, result.Total, authErr)
	return result, authErr
}

func (e *Engine) pushPrediction(ctx context.Context, token string, p predictions.Prediction) (predictions.Prediction, error) {
	req := backend.PredictionRequest{
		HomeScore: p.HomeScore,
		AwayScore: p.AwayScore,
		Comment:   p.Comment,
	}
	// A synthesized id means the server has never seen this prediction.
	if p.ID.IsLocal() {
		return e.api.CreatePrediction(ctx, token, p.MatchID, req)
	}
	return e.api.UpdatePrediction(ctx, token, p.ID.Server, req)
}

// AutoSyncResult wraps a scheduled reconciliation outcome.
type AutoSyncResult struct {
	Predictions SyncResult `json:"predictions"`
	Timestamp   time.Time  `json:"timestamp"`
}

// AutoSync is the entry point for the periodic timer and the manual
// "sync now" action: it checks connectivity first and short-circuits without
// touching storage when the backend is unreachable. Fixtures are read-only
// from this side, so only predictions reconcile.
func (e *Engine) AutoSync(ctx context.Context) (AutoSyncResult, error) {
	if !e.prober.Check(ctx) {
		return AutoSyncResult{Timestamp: e.now()}, ErrNotConnected
	}

	result, err := e.SyncPredictions(ctx)
	return AutoSyncResult{Predictions: result, Timestamp: e.now()}, err
}
