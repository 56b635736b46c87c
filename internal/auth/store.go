// Package auth holds the credential the sync layer authenticates with. The
// sync engine only ever reads the token and clears it on a 401; installing a
// credential is the session handler's job.
package auth

import "strconv"

// Credentials is what a successful login yields.
type Credentials struct {
	Token    string
	UserID   int
	Username string
}

// Repository is the slice of the cache the auth store persists through.
type Repository interface {
	GetValue(key string) (string, bool, error)
	SetValue(key, value string) error
	DeleteValue(key string) error
}

const (
	keyAccessToken = "access_token"
	keyUserID      = "user_id"
	keyUsername    = "username"
)

// Store reads and writes the credential keys in the local cache.
type Store struct {
	repo Repository
}

// NewStore constructs an auth store over the cache repository.
func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

// Token returns the stored bearer token, if any.
func (s *Store) Token() (string, bool) {
	token, ok, err := s.repo.GetValue(keyAccessToken)
	if err != nil || !ok || token == "" {
		return "", false
	}
	return token, true
}

// Clear drops the stored token. Called on any 401 so the next authenticated
// read short-circuits to "session expired" instead of hitting the network.
func (s *Store) Clear() error {
	return s.repo.DeleteValue(keyAccessToken)
}

// UserID returns the stored user id, if any.
func (s *Store) UserID() (int, bool) {
	raw, ok, err := s.repo.GetValue(keyUserID)
	if err != nil || !ok {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return id, true
}

// Username returns the stored display name, if any.
func (s *Store) Username() (string, bool) {
	name, ok, err := s.repo.GetValue(keyUsername)
	if err != nil || !ok || name == "" {
		return "", false
	}
	return name, true
}

// Save installs a credential after login. Never called by the sync engine.
func (s *Store) Save(creds Credentials) error {
	if err := s.repo.SetValue(keyAccessToken, creds.Token); err != nil {
		return err
	}
	if err := s.repo.SetValue(keyUserID, strconv.Itoa(creds.UserID)); err != nil {
		return err
	}
	return s.repo.SetValue(keyUsername, creds.Username)
}
