package backend

import (
	"context"

	"matchday-companion/internal/domain/fixtures"
	"matchday-companion/internal/domain/leaderboard"
	"matchday-companion/internal/domain/predictions"
)

// FixtureLister fetches match listings.
type FixtureLister interface {
	UpcomingMatches(ctx context.Context) ([]fixtures.Fixture, error)
	PastMatches(ctx context.Context) ([]fixtures.Fixture, error)
}

// PredictionAPI covers the authenticated prediction surface.
type PredictionAPI interface {
	MyPredictions(ctx context.Context, token string) ([]predictions.Prediction, error)
	CreatePrediction(ctx context.Context, token string, matchID int, req PredictionRequest) (predictions.Prediction, error)
	UpdatePrediction(ctx context.Context, token string, predictionID int, req PredictionRequest) (predictions.Prediction, error)
}

// API combines the full backend surface the sync layer consumes.
type API interface {
	FixtureLister
	PredictionAPI
	Health(ctx context.Context) error
	Leaderboard(ctx context.Context) ([]leaderboard.Entry, error)
}
