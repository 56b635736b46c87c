package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError captures non-2xx responses from the backend.
type StatusError struct {
	Operation  string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "unexpected backend status"
	}
	if e.Operation != "" {
		return fmt.Sprintf("%s: %s (status=%d)", e.Operation, msg, e.StatusCode)
	}
	return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
}

// AsStatusError attempts to unwrap an error into a StatusError.
func AsStatusError(err error) (*StatusError, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr, true
	}
	return nil, false
}

// IsAuthExpired reports whether the backend rejected the credential (401).
// Callers clear the stored token and require a fresh login on this error;
// every other failure mode degrades to the cache or local storage instead.
func IsAuthExpired(err error) bool {
	if statusErr, ok := AsStatusError(err); ok {
		return statusErr.StatusCode == http.StatusUnauthorized
	}
	return false
}
