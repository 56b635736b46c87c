package config

import "time"

const (
	envPort         = "PORT"
	envDataDir      = "DATA_DIR"
	envSyncInterval = "SYNC_INTERVAL"
	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort    = "4600"
	defaultDataDir = "data"
	// Conservative default: a sync pass probes the backend and replays every
	// pending prediction, so once a minute is plenty for a contest client.
	defaultSyncInterval = 60 * Duration(time.Second)
	defaultMetricsPort  = "9090"
)
