package config

// Config holds runtime configuration for the companion.
type Config struct {
	Port         string
	DataDir      string
	SyncInterval Duration
	Backend      BackendConfig
	Metrics      MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:         envOrDefault(envPort, defaultPort),
		DataDir:      envOrDefault(envDataDir, defaultDataDir),
		SyncInterval: durationEnvOrDefault(envSyncInterval, defaultSyncInterval),
		Backend:      loadBackend(),
		Metrics:      loadMetrics(),
	}
}
