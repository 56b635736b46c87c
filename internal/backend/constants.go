package backend

import "time"

const (
	defaultBaseURL = "http://localhost:5000"

	// Data reads/writes get a generous deadline; the health probe stays short
	// so connectivity checks resolve quickly.
	defaultDataTimeout   = 10 * time.Second
	defaultHealthTimeout = 5 * time.Second

	pathHealth           = "/api/health"
	pathUpcomingMatches  = "/api/matches/upcoming-matches"
	pathPastMatches      = "/api/matches/past-matches"
	pathUserPredictions  = "/api/predictions/predictions"
	pathPredictionByID   = "/api/predictions/"
	pathLeaderboard      = "/api/predictions/leaderboard"
	queryUpcomingFilter  = "match_status=upcoming"
	maxErrorBodyPreview  = 512
)
