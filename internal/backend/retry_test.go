package backend

import (
	"context"
	"errors"
	"testing"
	"time"

	"matchday-companion/internal/domain/fixtures"
	"matchday-companion/internal/domain/predictions"
	"matchday-companion/internal/metrics"
)

type countingAPI struct {
	API
	listErr   error
	listCalls int

	writeErr    error
	createCalls int
}

func (c *countingAPI) UpcomingMatches(ctx context.Context) ([]fixtures.Fixture, error) {
	c.listCalls++
	if c.listErr != nil {
		return nil, c.listErr
	}
	return []fixtures.Fixture{{ID: 1}}, nil
}

func (c *countingAPI) PastMatches(ctx context.Context) ([]fixtures.Fixture, error) {
	c.listCalls++
	return nil, c.listErr
}

func (c *countingAPI) CreatePrediction(ctx context.Context, token string, matchID int, req PredictionRequest) (predictions.Prediction, error) {
	c.createCalls++
	return predictions.Prediction{}, c.writeErr
}

func newRetrying(inner API, attempts int) API {
	api := NewRetryingAPI(inner, nil, metrics.NewRecorder(), attempts, time.Millisecond)
	// Collapse the backoff so failure tests stay fast.
	api.(*retryingAPI).backoffFn = func(int) time.Duration { return 0 }
	return api
}

func TestRetryingAPIRetriesFixtureReads(t *testing.T) {
	inner := &countingAPI{listErr: errors.New("temporarily down")}
	api := newRetrying(inner, 3)

	_, err := api.UpcomingMatches(context.Background())
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if inner.listCalls != 3 {
		t.Fatalf("expected 3 attempts, got %d", inner.listCalls)
	}
}

func TestRetryingAPIStopsOnFirstSuccess(t *testing.T) {
	inner := &countingAPI{}
	api := newRetrying(inner, 3)

	result, err := api.UpcomingMatches(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 1 || inner.listCalls != 1 {
		t.Fatalf("expected single successful attempt, got calls=%d result=%+v", inner.listCalls, result)
	}
}

func TestRetryingAPINeverRetriesPredictionWrites(t *testing.T) {
	inner := &countingAPI{writeErr: errors.New("down")}
	api := newRetrying(inner, 3)

	_, err := api.CreatePrediction(context.Background(), "tok", 1, PredictionRequest{})
	if err == nil {
		t.Fatal("expected write error passed through")
	}
	if inner.createCalls != 1 {
		t.Fatalf("expected exactly one write attempt, got %d", inner.createCalls)
	}
}

func TestRetryingAPIHonorsContextCancellation(t *testing.T) {
	inner := &countingAPI{listErr: errors.New("down")}
	api := NewRetryingAPI(inner, nil, metrics.NewRecorder(), 5, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := api.UpcomingMatches(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if inner.listCalls != 1 {
		t.Fatalf("expected one attempt before cancellation, got %d", inner.listCalls)
	}
}

func TestRetryingAPIDefaults(t *testing.T) {
	inner := &countingAPI{listErr: errors.New("down")}
	api := NewRetryingAPI(inner, nil, metrics.NewRecorder(), 0, 0).(*retryingAPI)

	if api.maxAttempts != defaultRetryAttempts {
		t.Fatalf("expected default attempts %d, got %d", defaultRetryAttempts, api.maxAttempts)
	}
	if api.backoffFn(1) != defaultBackoff {
		t.Fatalf("expected linear backoff from default, got %s", api.backoffFn(1))
	}
}

func TestRetryingAPIRecordsEveryAttempt(t *testing.T) {
	inner := &countingAPI{listErr: errors.New("down")}
	recorder := metrics.NewRecorder()
	api := NewRetryingAPI(inner, nil, recorder, 2, time.Millisecond)
	api.(*retryingAPI).backoffFn = func(int) time.Duration { return 0 }

	_, _ = api.PastMatches(context.Background())

	if got := recorder.BackendCalls("past-matches"); got != 2 {
		t.Fatalf("expected 2 recorded calls, got %d", got)
	}
	if got := recorder.BackendErrors("past-matches"); got != 2 {
		t.Fatalf("expected 2 recorded errors, got %d", got)
	}
}
