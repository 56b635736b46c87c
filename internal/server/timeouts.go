package server

import "time"

const (
	readTimeout = 10 * time.Second
	// Submits can ride out a full backend timeout before degrading locally.
	writeTimeout = 15 * time.Second
	idleTimeout  = 60 * time.Second
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second
