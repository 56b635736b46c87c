package leaderboard

// Entry is one leaderboard row as served by the backend.
type Entry struct {
	Rank             int    `json:"rank"`
	UserID           int    `json:"user_id"`
	Username         string `json:"username"`
	TotalPoints      int    `json:"total_points"`
	PredictionsCount int    `json:"predictions_count"`
}
