package sync

import (
	"context"

	"matchday-companion/internal/backend"
	"matchday-companion/internal/cache"
	"matchday-companion/internal/domain/predictions"
	"matchday-companion/internal/timeutil"
)

// FetchUserPredictions returns the user's prediction collection keyed by
// match id. Without a stored credential it returns an empty map with no
// network call. A 401 clears the credential and reports ErrAuthExpired.
// Any other failure serves the cached collection.
//
// On success the server result is merged with pending local-only entries:
// a local-only prediction for a fixture the server has no record of survives
// the merge, while server data wins for any fixture it does know about. The
// merged collection is written back before being returned, so a pending
// prediction is never silently lost by a read.
func (e *Engine) FetchUserPredictions(ctx context.Context) (predictions.Map, error) {
	token, ok := e.auth.Token()
	if !ok {
		return predictions.Map{}, nil
	}

	fetched, err := e.api.MyPredictions(ctx, token)
	if err != nil {
		if backend.IsAuthExpired(err) {
			if clearErr := e.auth.Clear(); clearErr != nil {
				e.logError("clearing expired credential failed", clearErr)
			}
			return predictions.Map{}, ErrAuthExpired
		}

		e.logWarn("prediction fetch failed, serving cache", "error", err)
		e.recorder.RecordCacheFallback(cache.KeyPredictions)

		local, cacheErr := e.cache.Predictions()
		if cacheErr != nil {
			e.logError("reading cached predictions failed", cacheErr)
			return predictions.Map{}, nil
		}
		return local, nil
	}

	merged := predictions.Map{}
	for _, p := range fetched {
		p.Origin = predictions.OriginServerConfirmed
		merged[p.MatchID] = p
	}

	local, cacheErr := e.cache.Predictions()
	if cacheErr != nil {
		e.logError("reading cached predictions failed", cacheErr)
	}
	for matchID, p := range local {
		if p.Origin != predictions.OriginLocalOnly {
			continue
		}
		if _, exists := merged[matchID]; !exists {
			merged[matchID] = p
		}
	}

	if cacheErr := e.cache.ReplacePredictions(merged); cacheErr != nil {
		e.logError("caching merged predictions failed", cacheErr)
	}
	return merged, nil
}

// SubmitResult reports where a submitted prediction landed.
type SubmitResult struct {
	Prediction predictions.Prediction `json:"data"`
	Local      bool                   `json:"is_local"`
}

// SubmitPrediction stores a forecast for one fixture, preferring the server.
// An existing server-confirmed entry turns the call into an update addressed
// by the server id; anything else is a create addressed by the match id. A
// network failure or non-401 rejection is not a user-facing error: the
// prediction is written to the cache as local-only and reported as saved.
func (e *Engine) SubmitPrediction(ctx context.Context, matchID, homeScore, awayScore int, comment string) (SubmitResult, error) {
	if matchID <= 0 {
		return SubmitResult{}, ErrInvalidMatch
	}
	if homeScore < 0 || awayScore < 0 {
		return SubmitResult{}, ErrInvalidScore
	}

	token, ok := e.auth.Token()
	if !ok {
		return SubmitResult{}, ErrAuthRequired
	}

	current, cacheErr := e.cache.Predictions()
	if cacheErr != nil {
		e.logError("reading cached predictions failed", cacheErr)
		current = predictions.Map{}
	}
	existing, hasExisting := current[matchID]

	req := backend.PredictionRequest{
		HomeScore: homeScore,
		AwayScore: awayScore,
		Comment:   comment,
	}

	saved, err := e.writePrediction(ctx, token, matchID, existing, hasExisting, req)
	if err == nil {
		if saved.MatchID == 0 {
			saved.MatchID = matchID
		}
		saved.Origin = predictions.OriginServerConfirmed
		if cacheErr := e.cache.UpsertPrediction(saved); cacheErr != nil {
			e.logError("caching server prediction failed", cacheErr, "match_id", matchID)
		}
		return SubmitResult{Prediction: saved, Local: false}, nil
	}

	if backend.IsAuthExpired(err) {
		if clearErr := e.auth.Clear(); clearErr != nil {
			e.logError("clearing expired credential failed", clearErr)
		}
		return SubmitResult{}, ErrAuthExpired
	}

	e.logWarn("prediction submit failed, saving locally", "match_id", matchID, "error", err)

	local := e.buildLocalRecord(matchID, homeScore, awayScore, comment, existing, hasExisting)
	if cacheErr := e.cache.UpsertPrediction(local); cacheErr != nil {
		// Nothing durable happened; this one is a real error.
		return SubmitResult{}, cacheErr
	}
	e.recorder.RecordLocalSave()
	return SubmitResult{Prediction: local, Local: true}, nil
}

func (e *Engine) writePrediction(ctx context.Context, token string, matchID int, existing predictions.Prediction, hasExisting bool, req backend.PredictionRequest) (predictions.Prediction, error) {
	if hasExisting && existing.Origin == predictions.OriginServerConfirmed && !existing.ID.IsLocal() {
		return e.api.UpdatePrediction(ctx, token, existing.ID.Server, req)
	}
	return e.api.CreatePrediction(ctx, token, matchID, req)
}

func (e *Engine) buildLocalRecord(matchID, homeScore, awayScore int, comment string, existing predictions.Prediction, hasExisting bool) predictions.Prediction {
	now := timeutil.FormatTimestamp(e.now())

	id := predictions.NewLocalID()
	createdAt := now
	if hasExisting {
		if !existing.ID.IsZero() {
			id = existing.ID
		}
		if existing.CreatedAt != "" {
			createdAt = existing.CreatedAt
		}
	}

	userID, _ := e.auth.UserID()

	return predictions.Prediction{
		ID:        id,
		MatchID:   matchID,
		HomeScore: homeScore,
		AwayScore: awayScore,
		Comment:   comment,
		UserID:    userID,
		CreatedAt: createdAt,
		UpdatedAt: now,
		Origin:    predictions.OriginLocalOnly,
	}
}
