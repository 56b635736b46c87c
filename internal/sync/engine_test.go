package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"matchday-companion/internal/backend"
	"matchday-companion/internal/domain/fixtures"
	"matchday-companion/internal/domain/leaderboard"
	"matchday-companion/internal/domain/predictions"
	"matchday-companion/internal/metrics"
)

// fakeAPI is an in-package double for backend.API with call counters.
type fakeAPI struct {
	upcoming    []fixtures.Fixture
	upcomingErr error
	past        []fixtures.Fixture
	pastErr     error
	preds       []predictions.Prediction
	predsErr    error
	entries     []leaderboard.Entry
	entriesErr  error
	healthErr   error

	createFn func(matchID int, req backend.PredictionRequest) (predictions.Prediction, error)
	updateFn func(predictionID int, req backend.PredictionRequest) (predictions.Prediction, error)

	predsCalls  int
	createCalls int
	updateCalls int
}

func (f *fakeAPI) Health(ctx context.Context) error { return f.healthErr }

func (f *fakeAPI) UpcomingMatches(ctx context.Context) ([]fixtures.Fixture, error) {
	return f.upcoming, f.upcomingErr
}

func (f *fakeAPI) PastMatches(ctx context.Context) ([]fixtures.Fixture, error) {
	return f.past, f.pastErr
}

func (f *fakeAPI) MyPredictions(ctx context.Context, token string) ([]predictions.Prediction, error) {
	f.predsCalls++
	return f.preds, f.predsErr
}

func (f *fakeAPI) CreatePrediction(ctx context.Context, token string, matchID int, req backend.PredictionRequest) (predictions.Prediction, error) {
	f.createCalls++
	if f.createFn != nil {
		return f.createFn(matchID, req)
	}
	return predictions.Prediction{
		ID:        predictions.ID{Server: 1000 + matchID},
		MatchID:   matchID,
		HomeScore: req.HomeScore,
		AwayScore: req.AwayScore,
		Comment:   req.Comment,
	}, nil
}

func (f *fakeAPI) UpdatePrediction(ctx context.Context, token string, predictionID int, req backend.PredictionRequest) (predictions.Prediction, error) {
	f.updateCalls++
	if f.updateFn != nil {
		return f.updateFn(predictionID, req)
	}
	return predictions.Prediction{
		ID:        predictions.ID{Server: predictionID},
		HomeScore: req.HomeScore,
		AwayScore: req.AwayScore,
		Comment:   req.Comment,
	}, nil
}

func (f *fakeAPI) Leaderboard(ctx context.Context) ([]leaderboard.Entry, error) {
	return f.entries, f.entriesErr
}

// fakeCache is an in-memory Cache that counts writes so tests can assert
// exactly which mutations a code path performed.
type fakeCache struct {
	fixtureSets map[string][]fixtures.Fixture
	preds       predictions.Map
	board       []leaderboard.Entry
	boardSet    bool

	predsErr error

	predsReads      int
	replaceFixtures int
	replacePreds    int
	upserts         int
	clears          int
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		fixtureSets: map[string][]fixtures.Fixture{},
		preds:       predictions.Map{},
	}
}

func (f *fakeCache) Fixtures(key string) ([]fixtures.Fixture, bool, error) {
	items, ok := f.fixtureSets[key]
	return items, ok, nil
}

func (f *fakeCache) ReplaceFixtures(key string, items []fixtures.Fixture) error {
	f.replaceFixtures++
	f.fixtureSets[key] = items
	return nil
}

func (f *fakeCache) Predictions() (predictions.Map, error) {
	f.predsReads++
	if f.predsErr != nil {
		return nil, f.predsErr
	}
	return f.preds.Clone(), nil
}

func (f *fakeCache) ReplacePredictions(m predictions.Map) error {
	f.replacePreds++
	f.preds = m.Clone()
	return nil
}

func (f *fakeCache) UpsertPrediction(p predictions.Prediction) error {
	f.upserts++
	f.preds[p.MatchID] = p
	return nil
}

func (f *fakeCache) Leaderboard() ([]leaderboard.Entry, bool, error) {
	return f.board, f.boardSet, nil
}

func (f *fakeCache) ReplaceLeaderboard(entries []leaderboard.Entry) error {
	f.board = entries
	f.boardSet = true
	return nil
}

func (f *fakeCache) ClearData() error {
	f.clears++
	f.fixtureSets = map[string][]fixtures.Fixture{}
	f.preds = predictions.Map{}
	f.board = nil
	f.boardSet = false
	return nil
}

type fakeAuth struct {
	token   string
	userID  int
	cleared bool
}

func (f *fakeAuth) Token() (string, bool) { return f.token, f.token != "" }

func (f *fakeAuth) Clear() error {
	f.cleared = true
	f.token = ""
	return nil
}

func (f *fakeAuth) UserID() (int, bool) { return f.userID, f.userID != 0 }

type fakeProber struct {
	reachable bool
	calls     int
}

func (f *fakeProber) Check(ctx context.Context) bool {
	f.calls++
	return f.reachable
}

var testNow = time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)

func newTestEngine(api *fakeAPI, cache *fakeCache, auth *fakeAuth, prober *fakeProber) *Engine {
	e := New(api, cache, auth, prober, nil, metrics.NewRecorder())
	e.now = func() time.Time { return testNow }
	return e
}

func status(code int) error {
	return &backend.StatusError{Operation: "test", StatusCode: code}
}

func TestClearLocalDataDelegatesToCache(t *testing.T) {
	cache := newFakeCache()
	e := newTestEngine(&fakeAPI{}, cache, &fakeAuth{}, &fakeProber{})

	if err := e.ClearLocalData(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.clears != 1 {
		t.Fatalf("expected one clear, got %d", cache.clears)
	}
}

func TestEngineNilLoggerDoesNotPanic(t *testing.T) {
	e := newTestEngine(&fakeAPI{upcomingErr: errors.New("down")}, newFakeCache(), &fakeAuth{}, &fakeProber{})
	e.logWarn("warn")
	e.logError("error", errors.New("boom"))
	_ = e.FetchUpcomingFixtures(context.Background())
}
