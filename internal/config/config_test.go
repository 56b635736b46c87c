package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %q, got %q", defaultPort, cfg.Port)
	}
	if cfg.DataDir != defaultDataDir {
		t.Fatalf("expected default data dir %q, got %q", defaultDataDir, cfg.DataDir)
	}
	if cfg.SyncInterval != defaultSyncInterval {
		t.Fatalf("expected default sync interval %s, got %s", defaultSyncInterval, cfg.SyncInterval)
	}
	if cfg.Backend.BaseURL != defaultBackendBaseURL {
		t.Fatalf("expected default backend url %q, got %q", defaultBackendBaseURL, cfg.Backend.BaseURL)
	}
	if cfg.Backend.RetryAttempts != defaultBackendRetryAttempts {
		t.Fatalf("expected default retry attempts %d, got %d", defaultBackendRetryAttempts, cfg.Backend.RetryAttempts)
	}
	if !cfg.Metrics.Enabled {
		t.Fatal("expected metrics enabled by default")
	}
	if cfg.Metrics.ServiceName != "matchday-companion" {
		t.Fatalf("unexpected service name %q", cfg.Metrics.ServiceName)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv(envPort, "8631")
	t.Setenv(envDataDir, "/var/lib/companion")
	t.Setenv(envSyncInterval, "2m")
	t.Setenv(envBackendBaseURL, "http://api.internal:7000")
	t.Setenv(envBackendDataTimeout, "15s")
	t.Setenv(envBackendRetryAttempts, "5")
	t.Setenv(envMetricsOn, "false")

	cfg := Load()

	if cfg.Port != "8631" {
		t.Fatalf("unexpected port %q", cfg.Port)
	}
	if cfg.DataDir != "/var/lib/companion" {
		t.Fatalf("unexpected data dir %q", cfg.DataDir)
	}
	if cfg.SyncInterval != 2*time.Minute {
		t.Fatalf("unexpected sync interval %s", cfg.SyncInterval)
	}
	if cfg.Backend.BaseURL != "http://api.internal:7000" {
		t.Fatalf("unexpected backend url %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.DataTimeout != 15*time.Second {
		t.Fatalf("unexpected data timeout %s", cfg.Backend.DataTimeout)
	}
	if cfg.Backend.RetryAttempts != 5 {
		t.Fatalf("unexpected retry attempts %d", cfg.Backend.RetryAttempts)
	}
	if cfg.Metrics.Enabled {
		t.Fatal("expected metrics disabled")
	}
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	t.Setenv(envSyncInterval, "whenever")
	t.Setenv(envBackendRetryAttempts, "-2")

	cfg := Load()

	if cfg.SyncInterval != defaultSyncInterval {
		t.Fatalf("expected default interval, got %s", cfg.SyncInterval)
	}
	if cfg.Backend.RetryAttempts != defaultBackendRetryAttempts {
		t.Fatalf("expected default retries, got %d", cfg.Backend.RetryAttempts)
	}
}
