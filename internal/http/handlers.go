package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	nethttp "net/http"
	"strconv"
	"strings"
	"time"

	"matchday-companion/internal/auth"
	"matchday-companion/internal/domain/predictions"
	"matchday-companion/internal/sync"
	"matchday-companion/internal/syncer"
)

type nowFunc func() time.Time

// Engine is the slice of the sync engine the local API exposes to the UI.
type Engine interface {
	FetchUpcomingFixtures(ctx context.Context) sync.FixturesResult
	FetchPastFixtures(ctx context.Context) sync.FixturesResult
	FetchUserPredictions(ctx context.Context) (predictions.Map, error)
	SubmitPrediction(ctx context.Context, matchID, homeScore, awayScore int, comment string) (sync.SubmitResult, error)
	FetchLeaderboard(ctx context.Context) sync.LeaderboardResult
	ClearLocalData() error
}

// SyncTrigger runs reconciliation on demand and reports loop health.
type SyncTrigger interface {
	SyncNow(ctx context.Context) (sync.AutoSyncResult, error)
	Status() syncer.Status
}

// Prober answers the reachability question for the status endpoint.
type Prober interface {
	Check(ctx context.Context) bool
}

// SessionStore installs and clears the stored credential.
type SessionStore interface {
	Save(creds auth.Credentials) error
	Clear() error
}

// Handler wires the local API routes to the sync layer.
type Handler struct {
	engine   Engine
	trigger  SyncTrigger
	prober   Prober
	sessions SessionStore
	logger   *slog.Logger
	now      nowFunc
}

// NewHandler constructs a Handler with defaults.
func NewHandler(engine Engine, trigger SyncTrigger, prober Prober, sessions SessionStore, logger *slog.Logger) *Handler {
	return &Handler{
		engine:   engine,
		trigger:  trigger,
		prober:   prober,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

// Health reports the companion's own health, not the backend's.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"})
}

// Ready reports readiness. Offline is a supported state, so readiness only
// means the sync layer is wired; loop health rides along for dashboards.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	payload := map[string]any{"status": "ready"}
	if h.trigger != nil {
		payload["sync"] = h.trigger.Status()
	}
	h.writeJSON(w, nethttp.StatusOK, payload)
}

// UpcomingFixtures returns upcoming matches with their provenance.
func (h *Handler) UpcomingFixtures(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.writeJSON(w, nethttp.StatusOK, h.engine.FetchUpcomingFixtures(r.Context()))
}

// PastFixtures returns completed matches with their provenance.
func (h *Handler) PastFixtures(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.writeJSON(w, nethttp.StatusOK, h.engine.FetchPastFixtures(r.Context()))
}

// Predictions returns the user's prediction collection keyed by match id.
func (h *Handler) Predictions(w nethttp.ResponseWriter, r *nethttp.Request) {
	preds, err := h.engine.FetchUserPredictions(r.Context())
	if err != nil {
		if errors.Is(err, sync.ErrAuthExpired) {
			h.writeError(w, nethttp.StatusUnauthorized, err.Error())
			return
		}
		h.writeError(w, nethttp.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, nethttp.StatusOK, preds)
}

// scoreValue coerces a score that may arrive as a JSON number or a numeric
// string, the way browser form values tend to.
type scoreValue int

func (s *scoreValue) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return errors.New("score must be an integer")
	}
	*s = scoreValue(v)
	return nil
}

type submitRequest struct {
	HomeScore scoreValue `json:"home_score"`
	AwayScore scoreValue `json:"away_score"`
	Comment   string     `json:"comment"`
}

type submitResponse struct {
	Success bool                   `json:"success"`
	IsLocal bool                   `json:"is_local"`
	Data    predictions.Prediction `json:"data"`
}

// SubmitPrediction accepts a forecast for the fixture named in the path.
// Expect path: /api/predictions/{matchID}
func (h *Handler) SubmitPrediction(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodPost && r.Method != nethttp.MethodPut {
		h.writeError(w, nethttp.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rawID := strings.TrimPrefix(r.URL.Path, "/api/predictions/")
	matchID, err := strconv.Atoi(rawID)
	if err != nil || matchID <= 0 {
		h.writeError(w, nethttp.StatusBadRequest, "invalid match id")
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, nethttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.engine.SubmitPrediction(r.Context(), matchID, int(req.HomeScore), int(req.AwayScore), req.Comment)
	switch {
	case err == nil:
		h.writeJSON(w, nethttp.StatusOK, submitResponse{Success: true, IsLocal: result.Local, Data: result.Prediction})
	case errors.Is(err, sync.ErrAuthRequired), errors.Is(err, sync.ErrAuthExpired):
		h.writeError(w, nethttp.StatusUnauthorized, err.Error())
	case errors.Is(err, sync.ErrInvalidScore), errors.Is(err, sync.ErrInvalidMatch):
		h.writeError(w, nethttp.StatusBadRequest, err.Error())
	default:
		h.writeError(w, nethttp.StatusInternalServerError, err.Error())
	}
}

type syncResponse struct {
	Success     bool            `json:"success"`
	Predictions sync.SyncResult `json:"predictions"`
	Timestamp   string          `json:"timestamp"`
	Message     string          `json:"message,omitempty"`
}

// SyncNow runs one reconciliation pass on demand.
func (h *Handler) SyncNow(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodPost {
		h.writeError(w, nethttp.StatusMethodNotAllowed, "method not allowed")
		return
	}

	result, err := h.trigger.SyncNow(r.Context())
	resp := syncResponse{
		Success:     err == nil,
		Predictions: result.Predictions,
		Timestamp:   result.Timestamp.UTC().Format(time.RFC3339),
	}
	switch {
	case err == nil:
		h.writeJSON(w, nethttp.StatusOK, resp)
	case errors.Is(err, sync.ErrNotConnected):
		resp.Message = err.Error()
		h.writeJSON(w, nethttp.StatusOK, resp)
	case errors.Is(err, sync.ErrAuthRequired), errors.Is(err, sync.ErrAuthExpired):
		h.writeError(w, nethttp.StatusUnauthorized, err.Error())
	default:
		h.writeError(w, nethttp.StatusInternalServerError, err.Error())
	}
}

// SyncStatus reports reachability and recent loop health for the UI's
// online/offline banner.
func (h *Handler) SyncStatus(w nethttp.ResponseWriter, r *nethttp.Request) {
	payload := map[string]any{
		"connected": h.prober.Check(r.Context()),
	}
	if h.trigger != nil {
		payload["sync"] = h.trigger.Status()
	}
	h.writeJSON(w, nethttp.StatusOK, payload)
}

// Leaderboard returns the contest standings.
func (h *Handler) Leaderboard(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.writeJSON(w, nethttp.StatusOK, h.engine.FetchLeaderboard(r.Context()))
}

type sessionRequest struct {
	Token    string `json:"access_token"`
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
}

// Session installs (PUT/POST) or clears (DELETE) the stored credential. The
// sync engine itself never installs one.
func (h *Handler) Session(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch r.Method {
	case nethttp.MethodPost, nethttp.MethodPut:
		var req sessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.writeError(w, nethttp.StatusBadRequest, "invalid request body")
			return
		}
		if req.Token == "" {
			h.writeError(w, nethttp.StatusBadRequest, "access_token is required")
			return
		}
		if err := h.sessions.Save(auth.Credentials{Token: req.Token, UserID: req.UserID, Username: req.Username}); err != nil {
			h.writeError(w, nethttp.StatusInternalServerError, err.Error())
			return
		}
		h.writeJSON(w, nethttp.StatusNoContent, nil)
	case nethttp.MethodDelete:
		if err := h.sessions.Clear(); err != nil {
			h.writeError(w, nethttp.StatusInternalServerError, err.Error())
			return
		}
		h.writeJSON(w, nethttp.StatusNoContent, nil)
	default:
		h.writeError(w, nethttp.StatusMethodNotAllowed, "method not allowed")
	}
}

// ClearCache wipes cached data while keeping the credential.
func (h *Handler) ClearCache(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodDelete {
		h.writeError(w, nethttp.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if err := h.engine.ClearLocalData(); err != nil {
		h.writeError(w, nethttp.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, nethttp.StatusNoContent, nil)
}

func (h *Handler) writeJSON(w nethttp.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil && h.logger != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w nethttp.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
