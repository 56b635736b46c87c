package http

import nethttp "net/http"

// NewRouter registers the local API routes on a ServeMux.
func NewRouter(handler *Handler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/api/fixtures/upcoming", handler.UpcomingFixtures)
	mux.HandleFunc("/api/fixtures/past", handler.PastFixtures)
	mux.HandleFunc("/api/predictions", handler.Predictions)
	mux.HandleFunc("/api/predictions/", handler.SubmitPrediction)
	mux.HandleFunc("/api/sync", handler.SyncNow)
	mux.HandleFunc("/api/sync/status", handler.SyncStatus)
	mux.HandleFunc("/api/leaderboard", handler.Leaderboard)
	mux.HandleFunc("/api/session", handler.Session)
	mux.HandleFunc("/api/cache", handler.ClearCache)
	return mux
}
