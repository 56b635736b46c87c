package fixtures

import "time"

// Seed returns a small deterministic set of upcoming fixtures so the UI has
// something to render on a cold, offline start. It is used only when both the
// backend and the local cache come up empty.
func Seed(now time.Time) []Fixture {
	day := 24 * time.Hour
	return []Fixture{
		{
			ID:        1,
			HomeTeam:  "Barcelona",
			AwayTeam:  "Bayern Munich",
			MatchDate: now.Add(2 * day).UTC().Format(time.RFC3339),
			Stadium:   "Camp Nou",
			Stage:     "Champions League, Quarter-final",
			Status:    StatusScheduled,
		},
		{
			ID:        2,
			HomeTeam:  "Real Madrid",
			AwayTeam:  "Manchester City",
			MatchDate: now.Add(4 * day).UTC().Format(time.RFC3339),
			Stadium:   "Santiago Bernabeu",
			Stage:     "Champions League, Quarter-final",
			Status:    StatusScheduled,
		},
		{
			ID:        3,
			HomeTeam:  "Paris Saint-Germain",
			AwayTeam:  "Liverpool",
			MatchDate: now.Add(6 * day).UTC().Format(time.RFC3339),
			Stadium:   "Parc des Princes",
			Stage:     "Champions League, Quarter-final",
			Status:    StatusScheduled,
		},
	}
}
