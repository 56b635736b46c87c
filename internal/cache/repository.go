package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"matchday-companion/internal/domain/fixtures"
	"matchday-companion/internal/domain/leaderboard"
	"matchday-companion/internal/domain/predictions"
)

// Keys the repository stores collections under. The credential keys belong to
// the auth store; ClearData leaves them alone.
const (
	KeyUpcomingMatches = "upcoming_matches"
	KeyPastMatches     = "past_matches"
	KeyPredictions     = "user_predictions"
	KeyLeaderboard     = "leaderboard"
	KeyAccessToken     = "access_token"
	KeyUserID          = "user_id"
	KeyUsername        = "username"
)

var credentialKeys = []string{KeyAccessToken, KeyUserID, KeyUsername}

// Repository exposes the local cache as atomic whole-collection operations.
// Callers never see partial writes: each method is a single statement or
// transaction, so a future multi-tab host can add coordination without
// changing call sites.
type Repository struct {
	db  *sql.DB
	now func() time.Time
}

// NewRepository wraps an open cache database.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// Fixtures loads a cached fixture collection. The second return is false when
// the key has never been written.
func (r *Repository) Fixtures(key string) ([]fixtures.Fixture, bool, error) {
	var result []fixtures.Fixture
	ok, err := r.get(key, &result)
	return result, ok, err
}

// ReplaceFixtures overwrites a fixture collection with a fresh snapshot.
// Last successful fetch wins; there is no merging or versioning.
func (r *Repository) ReplaceFixtures(key string, items []fixtures.Fixture) error {
	return r.put(key, items)
}

// Predictions loads the local prediction collection keyed by match id.
// An unwritten key yields an empty, usable map.
func (r *Repository) Predictions() (predictions.Map, error) {
	result := predictions.Map{}
	if _, err := r.get(KeyPredictions, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ReplacePredictions overwrites the whole prediction collection.
func (r *Repository) ReplacePredictions(m predictions.Map) error {
	if m == nil {
		m = predictions.Map{}
	}
	return r.put(KeyPredictions, m)
}

// UpsertPrediction stores one prediction under its match id, replacing any
// prior entry for that fixture. The read-modify-write runs in a transaction.
func (r *Repository) UpsertPrediction(p predictions.Prediction) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	current := predictions.Map{}
	var raw string
	err = tx.QueryRow("SELECT value FROM cache_entries WHERE key = ?", KeyPredictions).Scan(&raw)
	switch {
	case err == nil:
		if err := json.Unmarshal([]byte(raw), &current); err != nil {
			return fmt.Errorf("decoding cached %s: %w", KeyPredictions, err)
		}
	case errors.Is(err, sql.ErrNoRows):
	default:
		return err
	}

	current[p.MatchID] = p
	encoded, err := json.Marshal(current)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(upsertStmt, KeyPredictions, string(encoded), r.timestamp()); err != nil {
		return err
	}
	return tx.Commit()
}

// Leaderboard loads the cached standings.
func (r *Repository) Leaderboard() ([]leaderboard.Entry, bool, error) {
	var result []leaderboard.Entry
	ok, err := r.get(KeyLeaderboard, &result)
	return result, ok, err
}

// ReplaceLeaderboard overwrites the cached standings.
func (r *Repository) ReplaceLeaderboard(entries []leaderboard.Entry) error {
	return r.put(KeyLeaderboard, entries)
}

// GetValue reads a raw string value, used for the credential keys the auth
// store owns.
func (r *Repository) GetValue(key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM cache_entries WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SetValue writes a raw string value.
func (r *Repository) SetValue(key, value string) error {
	_, err := r.db.Exec(upsertStmt, key, value, r.timestamp())
	return err
}

// DeleteValue removes a single key.
func (r *Repository) DeleteValue(key string) error {
	_, err := r.db.Exec("DELETE FROM cache_entries WHERE key = ?", key)
	return err
}

// ClearData wipes every cached collection but deliberately preserves the
// credential keys so a cache reset does not log the user out.
func (r *Repository) ClearData() error {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(credentialKeys)), ",")
	args := make([]any, len(credentialKeys))
	for i, k := range credentialKeys {
		args[i] = k
	}
	_, err := r.db.Exec("DELETE FROM cache_entries WHERE key NOT IN ("+placeholders+")", args...)
	return err
}

const upsertStmt = `
INSERT INTO cache_entries (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
`

func (r *Repository) get(key string, dest any) (bool, error) {
	var raw string
	err := r.db.QueryRow("SELECT value FROM cache_entries WHERE key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("decoding cached %s: %w", key, err)
	}
	return true, nil
}

func (r *Repository) put(key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(upsertStmt, key, string(encoded), r.timestamp())
	return err
}

func (r *Repository) timestamp() string {
	return r.now().UTC().Format(time.RFC3339)
}
