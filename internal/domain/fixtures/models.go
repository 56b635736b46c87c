package fixtures

// Status mirrors the backend contract for match lifecycle states.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusLive      Status = "live"
	StatusFinished  Status = "finished"
	StatusPostponed Status = "postponed"
	StatusCanceled  Status = "canceled"
)

// Fixture is a scheduled or completed match as served by the backend.
// IDs are server-assigned and stable; the client never mutates fixtures
// except by replacing the whole cached set with a fresh fetch.
type Fixture struct {
	ID        int    `json:"id"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	HomeScore *int   `json:"home_score,omitempty"`
	AwayScore *int   `json:"away_score,omitempty"`
	MatchDate string `json:"match_date"`
	Stadium   string `json:"stadium,omitempty"`
	Stage     string `json:"stage,omitempty"`
	Status    Status `json:"status,omitempty"`
}

// Completed reports whether a final score is present for both sides.
func (f Fixture) Completed() bool {
	return f.HomeScore != nil && f.AwayScore != nil
}
