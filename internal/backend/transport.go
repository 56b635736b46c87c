package backend

import (
	"net/http"
	"strings"
	"time"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

func resolveHTTPClient(client *http.Client) httpDoer {
	if client != nil {
		return client
	}
	// Per-call deadlines come from contexts; the client timeout is a backstop.
	return &http.Client{Timeout: defaultDataTimeout}
}

func normalizeBaseURL(raw string) string {
	if raw == "" {
		raw = defaultBaseURL
	}
	return strings.TrimSuffix(raw, "/")
}

func resolveTimeout(value, fallback time.Duration) time.Duration {
	if value <= 0 {
		return fallback
	}
	return value
}
