package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "stmtdiag.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `
store:
  driver: "sqlite3"
  path: "/tmp/requests.db"
  busy_timeout: "2s"

coordinator:
  create_mode: "atomic"

monitor:
  schedule: "*/5 * * * *"

server:
  listen_address: "0.0.0.0:9191"
  read_timeout: "60s"

telemetry:
  logging:
    level: "debug"
    format: "text"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Store.Driver != "sqlite3" || cfg.Store.Path != "/tmp/requests.db" {
		t.Errorf("unexpected store: %+v", cfg.Store)
	}
	if cfg.Store.BusyTimeout != 2*time.Second {
		t.Errorf("expected busy timeout 2s, got %v", cfg.Store.BusyTimeout)
	}
	if cfg.Coordinator.CreateMode != "atomic" {
		t.Errorf("expected create mode atomic, got %q", cfg.Coordinator.CreateMode)
	}
	if cfg.Monitor.Schedule != "*/5 * * * *" {
		t.Errorf("expected schedule %q, got %q", "*/5 * * * *", cfg.Monitor.Schedule)
	}
	if cfg.Server.ReadTimeout != 60*time.Second {
		t.Errorf("expected read timeout 60s, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("expected logging level debug, got %q", cfg.Telemetry.Logging.Level)
	}

	// Unset fields keep their defaults.
	if cfg.Server.WriteTimeout != DefaultWriteTimeout {
		t.Errorf("expected default write timeout, got %v", cfg.Server.WriteTimeout)
	}
	if !cfg.Store.WALMode || !cfg.Monitor.Enabled || !cfg.Telemetry.Metrics.Enabled {
		t.Error("expected boolean defaults to stay enabled")
	}
}

func TestLoadConfig_DisablesBooleanDefaults(t *testing.T) {
	path := writeConfig(t, `
store:
  wal_mode: false
monitor:
  enabled: false
telemetry:
  metrics:
    enabled: false
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Store.WALMode {
		t.Error("expected wal_mode false")
	}
	if cfg.Monitor.Enabled {
		t.Error("expected monitor disabled")
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("expected metrics disabled")
	}
}

func TestLoadConfig_EmptyFile(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("failed to load empty config: %v", err)
	}
	if cfg.Store.Path != DefaultStorePath {
		t.Errorf("expected default store path, got %q", cfg.Store.Path)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		missing bool
		wantErr string
	}{
		{
			name:    "missing file",
			missing: true,
			wantErr: "failed to read configuration file",
		},
		{
			name:    "malformed yaml",
			content: "store: [unclosed",
			wantErr: "failed to parse configuration file",
		},
		{
			name:    "invalid create mode",
			content: "coordinator:\n  create_mode: \"optimistic\"\n",
			wantErr: "coordinator.create_mode",
		},
		{
			name:    "invalid schedule",
			content: "monitor:\n  schedule: \"every minute\"\n",
			wantErr: "monitor.schedule",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "absent.yaml")
			if !tt.missing {
				path = writeConfig(t, tt.content)
			}

			_, err := LoadConfig(path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
store:
  path: "/from/file.db"
telemetry:
  logging:
    level: "warn"
`)

	t.Setenv("STMTDIAG_STORE_PATH", "/from/env.db")
	t.Setenv("STMTDIAG_STORE_MAX_OPEN_CONNS", "8")
	t.Setenv("STMTDIAG_STORE_WAL_MODE", "false")
	t.Setenv("STMTDIAG_COORDINATOR_CREATE_MODE", "atomic")
	t.Setenv("STMTDIAG_SERVER_SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("STMTDIAG_TELEMETRY_LOGGING_LEVEL", "error")
	t.Setenv("STMTDIAG_TELEMETRY_TRACING_ENABLED", "true")
	t.Setenv("STMTDIAG_TELEMETRY_TRACING_ENDPOINT", "otel-collector:4317")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Store.Path != "/from/env.db" {
		t.Errorf("expected env store path, got %q", cfg.Store.Path)
	}
	if cfg.Store.MaxOpenConns != 8 {
		t.Errorf("expected 8 open conns, got %d", cfg.Store.MaxOpenConns)
	}
	if cfg.Store.WALMode {
		t.Error("expected wal_mode false from env")
	}
	if cfg.Coordinator.CreateMode != "atomic" {
		t.Errorf("expected create mode atomic, got %q", cfg.Coordinator.CreateMode)
	}
	if cfg.Server.ShutdownTimeout != 3*time.Second {
		t.Errorf("expected shutdown timeout 3s, got %v", cfg.Server.ShutdownTimeout)
	}
	if cfg.Telemetry.Logging.Level != "error" {
		t.Errorf("expected logging level error, got %q", cfg.Telemetry.Logging.Level)
	}
	if !cfg.Telemetry.Tracing.Enabled || cfg.Telemetry.Tracing.Endpoint != "otel-collector:4317" {
		t.Errorf("expected tracing enabled towards otel-collector, got %+v", cfg.Telemetry.Tracing)
	}
}

func TestLoadConfigWithEnvOverrides_NoFile(t *testing.T) {
	t.Setenv("STMTDIAG_STORE_DRIVER", "sqlite3")

	cfg, err := LoadConfigWithEnvOverrides("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Store.Driver != "sqlite3" {
		t.Errorf("expected driver sqlite3, got %q", cfg.Store.Driver)
	}
	if cfg.Store.Path != DefaultStorePath {
		t.Errorf("expected default path, got %q", cfg.Store.Path)
	}
}

func TestLoadConfigWithEnvOverrides_InvalidValues(t *testing.T) {
	t.Setenv("STMTDIAG_STORE_MAX_OPEN_CONNS", "many")
	t.Setenv("STMTDIAG_STORE_BUSY_TIMEOUT", "soon")
	t.Setenv("STMTDIAG_MONITOR_ENABLED", "maybe")

	_, err := LoadConfigWithEnvOverrides("")

	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Errors) != 3 {
		t.Fatalf("expected 3 field errors, got %d: %v", len(verr.Errors), verr)
	}
	if verr.Errors[0].Field != "STMTDIAG_STORE_MAX_OPEN_CONNS" {
		t.Errorf("unexpected first field %q", verr.Errors[0].Field)
	}
}

func TestLoadConfigWithEnvOverrides_InvalidAfterOverride(t *testing.T) {
	t.Setenv("STMTDIAG_STORE_DRIVER", "postgres")

	_, err := LoadConfigWithEnvOverrides("")
	if err == nil || !strings.Contains(err.Error(), "after environment overrides") {
		t.Fatalf("expected validation failure after overrides, got %v", err)
	}
}
