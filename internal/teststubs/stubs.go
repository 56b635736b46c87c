// Package teststubs provides shared test doubles for the sync layer's
// collaborators.
package teststubs

import (
	"context"
	"sync/atomic"

	"matchday-companion/internal/backend"
	"matchday-companion/internal/domain/fixtures"
	"matchday-companion/internal/domain/leaderboard"
	"matchday-companion/internal/domain/predictions"
	enginesync "matchday-companion/internal/sync"
)

// StubAPI is a test double for backend.API with per-operation call counters.
type StubAPI struct {
	Upcoming       []fixtures.Fixture
	Past           []fixtures.Fixture
	ListErr        error
	Predictions    []predictions.Prediction
	PredictionsErr error
	Entries        []leaderboard.Entry
	LeaderboardErr error
	HealthErr      error

	// CreateFn/UpdateFn override the default echo behavior when set.
	CreateFn func(matchID int, req backend.PredictionRequest) (predictions.Prediction, error)
	UpdateFn func(predictionID int, req backend.PredictionRequest) (predictions.Prediction, error)

	ListCalls        atomic.Int32
	PredictionCalls  atomic.Int32
	CreateCalls      atomic.Int32
	UpdateCalls      atomic.Int32
	HealthCalls      atomic.Int32
	LeaderboardCalls atomic.Int32
}

func (s *StubAPI) Health(ctx context.Context) error {
	_ = ctx
	s.HealthCalls.Add(1)
	return s.HealthErr
}

func (s *StubAPI) UpcomingMatches(ctx context.Context) ([]fixtures.Fixture, error) {
	_ = ctx
	s.ListCalls.Add(1)
	return s.Upcoming, s.ListErr
}

func (s *StubAPI) PastMatches(ctx context.Context) ([]fixtures.Fixture, error) {
	_ = ctx
	s.ListCalls.Add(1)
	return s.Past, s.ListErr
}

func (s *StubAPI) MyPredictions(ctx context.Context, token string) ([]predictions.Prediction, error) {
	_ = ctx
	_ = token
	s.PredictionCalls.Add(1)
	return s.Predictions, s.PredictionsErr
}

// CreatePrediction echoes the request back with a server-assigned id unless
// CreateFn is set.
func (s *StubAPI) CreatePrediction(ctx context.Context, token string, matchID int, req backend.PredictionRequest) (predictions.Prediction, error) {
	_ = ctx
	_ = token
	s.CreateCalls.Add(1)
	if s.CreateFn != nil {
		return s.CreateFn(matchID, req)
	}
	return predictions.Prediction{
		ID:        predictions.ID{Server: 1000 + matchID},
		MatchID:   matchID,
		HomeScore: req.HomeScore,
		AwayScore: req.AwayScore,
		Comment:   req.Comment,
		Origin:    predictions.OriginServerConfirmed,
	}, nil
}

// UpdatePrediction echoes the request back under the same id unless UpdateFn
// is set.
func (s *StubAPI) UpdatePrediction(ctx context.Context, token string, predictionID int, req backend.PredictionRequest) (predictions.Prediction, error) {
	_ = ctx
	_ = token
	s.UpdateCalls.Add(1)
	if s.UpdateFn != nil {
		return s.UpdateFn(predictionID, req)
	}
	return predictions.Prediction{
		ID:        predictions.ID{Server: predictionID},
		HomeScore: req.HomeScore,
		AwayScore: req.AwayScore,
		Comment:   req.Comment,
		Origin:    predictions.OriginServerConfirmed,
	}, nil
}

func (s *StubAPI) Leaderboard(ctx context.Context) ([]leaderboard.Entry, error) {
	_ = ctx
	s.LeaderboardCalls.Add(1)
	return s.Entries, s.LeaderboardErr
}

// StubProber is a test double for the connectivity prober.
type StubProber struct {
	Reachable bool
	Calls     atomic.Int32
}

func (s *StubProber) Check(ctx context.Context) bool {
	_ = ctx
	s.Calls.Add(1)
	return s.Reachable
}

// StubEngine is a test double for the syncer's engine dependency.
type StubEngine struct {
	Result enginesync.AutoSyncResult
	Err    error
	Calls  atomic.Int32
	Notify chan struct{}
}

func (s *StubEngine) AutoSync(ctx context.Context) (enginesync.AutoSyncResult, error) {
	_ = ctx
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
	return s.Result, s.Err
}
