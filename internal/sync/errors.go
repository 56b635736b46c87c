package sync

import "errors"

var (
	// ErrAuthRequired means no credential is stored; the caller must log in
	// before the operation can proceed.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthExpired means the backend rejected the stored credential. The
	// credential has already been cleared; the caller must log in again.
	ErrAuthExpired = errors.New("session expired, authentication required")

	// ErrNotConnected means the connectivity probe found the backend
	// unreachable, so reconciliation made no write attempts.
	ErrNotConnected = errors.New("backend unreachable")

	// ErrInvalidScore rejects a submit before any network call is made.
	ErrInvalidScore = errors.New("scores must be non-negative integers")

	// ErrInvalidMatch rejects a submit that names no fixture.
	ErrInvalidMatch = errors.New("a valid match id is required")
)
