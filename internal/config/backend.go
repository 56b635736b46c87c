package config

import "time"

const (
	envBackendBaseURL       = "BACKEND_BASE_URL"
	envBackendDataTimeout   = "BACKEND_DATA_TIMEOUT"
	envBackendHealthTimeout = "BACKEND_HEALTH_TIMEOUT"
	envBackendRetryAttempts = "BACKEND_RETRY_ATTEMPTS"
	envBackendRetryBackoff  = "BACKEND_RETRY_BACKOFF"

	defaultBackendBaseURL       = "http://localhost:5000"
	defaultBackendDataTimeout   = 10 * Duration(time.Second)
	defaultBackendHealthTimeout = 5 * Duration(time.Second)
	defaultBackendRetryAttempts = 3
	defaultBackendRetryBackoff  = 200 * Duration(time.Millisecond)
)

// BackendConfig controls how we talk to the contest backend.
type BackendConfig struct {
	BaseURL       string
	DataTimeout   Duration
	HealthTimeout Duration
	RetryAttempts int
	RetryBackoff  Duration
}

func loadBackend() BackendConfig {
	return BackendConfig{
		BaseURL:       envOrDefault(envBackendBaseURL, defaultBackendBaseURL),
		DataTimeout:   durationEnvOrDefault(envBackendDataTimeout, defaultBackendDataTimeout),
		HealthTimeout: durationEnvOrDefault(envBackendHealthTimeout, defaultBackendHealthTimeout),
		RetryAttempts: intEnvOrDefault(envBackendRetryAttempts, defaultBackendRetryAttempts),
		RetryBackoff:  durationEnvOrDefault(envBackendRetryBackoff, defaultBackendRetryBackoff),
	}
}
