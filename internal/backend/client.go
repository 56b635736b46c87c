package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"matchday-companion/internal/domain/fixtures"
	"matchday-companion/internal/domain/leaderboard"
	"matchday-companion/internal/domain/predictions"
)

// Config controls how the client reaches the contest backend.
type Config struct {
	BaseURL       string
	HTTPClient    *http.Client
	DataTimeout   time.Duration
	HealthTimeout time.Duration
}

// Client talks to the contest backend's REST surface and maps responses to
// domain models. All methods honor per-call deadlines; a timeout surfaces as
// an ordinary error so callers can fall back.
type Client struct {
	baseURL       string
	httpClient    httpDoer
	dataTimeout   time.Duration
	healthTimeout time.Duration
}

// NewClient constructs a backend client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:       normalizeBaseURL(cfg.BaseURL),
		httpClient:    resolveHTTPClient(cfg.HTTPClient),
		dataTimeout:   resolveTimeout(cfg.DataTimeout, defaultDataTimeout),
		healthTimeout: resolveTimeout(cfg.HealthTimeout, defaultHealthTimeout),
	}
}

// Health issues the lightweight health request. Any non-2xx response or
// transport failure is returned as an error.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pathHealth, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !successStatus(resp.StatusCode) {
		return c.statusError("health", resp)
	}
	return nil
}

// UpcomingMatches fetches fixtures that have not been played yet.
func (c *Client) UpcomingMatches(ctx context.Context) ([]fixtures.Fixture, error) {
	return c.fetchFixtures(ctx, "upcoming-matches", pathUpcomingMatches)
}

// PastMatches fetches completed fixtures, results included.
func (c *Client) PastMatches(ctx context.Context) ([]fixtures.Fixture, error) {
	return c.fetchFixtures(ctx, "past-matches", pathPastMatches)
}

func (c *Client) fetchFixtures(ctx context.Context, operation, path string) ([]fixtures.Fixture, error) {
	var result []fixtures.Fixture
	if err := c.getJSON(ctx, operation, path, "", &result); err != nil {
		return nil, err
	}
	return result, nil
}

// MyPredictions fetches the authenticated user's predictions for upcoming
// fixtures.
func (c *Client) MyPredictions(ctx context.Context, token string) ([]predictions.Prediction, error) {
	var result []predictions.Prediction
	path := pathUserPredictions + "?" + queryUpcomingFilter
	if err := c.getJSON(ctx, "my-predictions", path, token, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Leaderboard fetches the contest standings.
func (c *Client) Leaderboard(ctx context.Context) ([]leaderboard.Entry, error) {
	var result []leaderboard.Entry
	if err := c.getJSON(ctx, "leaderboard", pathLeaderboard, "", &result); err != nil {
		return nil, err
	}
	return result, nil
}

// PredictionRequest is the body for create/update prediction calls.
type PredictionRequest struct {
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
	Comment   string `json:"comment"`
}

// CreatePrediction submits a new prediction for the given fixture.
func (c *Client) CreatePrediction(ctx context.Context, token string, matchID int, req PredictionRequest) (predictions.Prediction, error) {
	path := pathPredictionByID + strconv.Itoa(matchID)
	return c.writePrediction(ctx, "create-prediction", http.MethodPost, path, token, req)
}

// UpdatePrediction replaces an existing prediction addressed by its server id.
func (c *Client) UpdatePrediction(ctx context.Context, token string, predictionID int, req PredictionRequest) (predictions.Prediction, error) {
	path := pathPredictionByID + strconv.Itoa(predictionID)
	return c.writePrediction(ctx, "update-prediction", http.MethodPut, path, token, req)
}

func (c *Client) writePrediction(ctx context.Context, operation, method, path, token string, payload PredictionRequest) (predictions.Prediction, error) {
	ctx, cancel := context.WithTimeout(ctx, c.dataTimeout)
	defer cancel()

	body, err := json.Marshal(payload)
	if err != nil {
		return predictions.Prediction{}, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return predictions.Prediction{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return predictions.Prediction{}, err
	}
	defer resp.Body.Close()

	if !successStatus(resp.StatusCode) {
		return predictions.Prediction{}, c.statusError(operation, resp)
	}

	var saved predictions.Prediction
	if err := json.NewDecoder(resp.Body).Decode(&saved); err != nil {
		return predictions.Prediction{}, fmt.Errorf("%s: decoding response: %w", operation, err)
	}
	saved.Origin = predictions.OriginServerConfirmed
	return saved, nil
}

func (c *Client) getJSON(ctx context.Context, operation, path, token string, dest any) error {
	ctx, cancel := context.WithTimeout(ctx, c.dataTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !successStatus(resp.StatusCode) {
		return c.statusError(operation, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%s: decoding response: %w", operation, err)
	}
	return nil
}

func (c *Client) statusError(operation string, resp *http.Response) error {
	preview, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyPreview))
	return &StatusError{
		Operation:  operation,
		StatusCode: resp.StatusCode,
		Message:    strings.TrimSpace(string(preview)),
	}
}

func successStatus(code int) bool {
	return code >= 200 && code < 300
}
