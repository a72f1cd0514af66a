package config

import "time"

// Config is the root configuration structure for stmtdiag.
type Config struct {
	// Store configures the SQLite database that holds diagnostics requests.
	Store StoreConfig `yaml:"store"`

	// Coordinator configures the request lifecycle rules.
	Coordinator CoordinatorConfig `yaml:"coordinator"`

	// Monitor configures the scheduled request state survey.
	Monitor MonitorConfig `yaml:"monitor"`

	// Server configures the operational HTTP endpoints of "stmtdiag serve".
	Server ServerConfig `yaml:"server"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// StoreConfig contains configuration for the request store.
type StoreConfig struct {
	// Driver is the database/sql driver: "sqlite" (modernc.org/sqlite, pure
	// Go) or "sqlite3" (mattn/go-sqlite3, requires cgo).
	// Default: "sqlite"
	Driver string `yaml:"driver"`

	// Path is the database file. Parent directories are created.
	// Default: "data/stmtdiag.db"
	Path string `yaml:"path"`

	// MaxOpenConns is the maximum number of open connections.
	// Default: 4
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 2
	MaxIdleConns int `yaml:"max_idle_conns"`

	// WALMode enables SQLite write-ahead logging.
	// Default: true
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is how long a statement waits for a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// CoordinatorConfig contains configuration for the request coordinator.
type CoordinatorConfig struct {
	// CreateMode is "two_phase" (pending check and insert in separate
	// transactions) or "atomic" (one transaction with a conditional insert).
	// Default: "two_phase"
	CreateMode string `yaml:"create_mode"`
}

// MonitorConfig contains configuration for the request state monitor.
type MonitorConfig struct {
	// Enabled starts the monitor in "stmtdiag serve".
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Schedule is a standard five-field cron expression.
	// Default: "* * * * *"
	Schedule string `yaml:"schedule"`
}

// ServerConfig contains configuration for the operational HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port to listen on.
	// Format: "host:port". Default: "127.0.0.1:9090"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading a request.
	// Default: 10s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration for writing a response.
	// Default: 10s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 15s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains OpenTelemetry tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the log format: "json", "text", "console".
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource adds file:line to every record.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled enables Prometheus metrics.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path of the Prometheus endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace prefixes every metric name.
	// Default: "stmtdiag"
	Namespace string `yaml:"namespace"`

	// Subsystem follows the namespace in every metric name.
	// Default: "coordinator"
	Subsystem string `yaml:"subsystem"`

	// DurationBuckets are the histogram buckets for operation durations, in
	// seconds.
	DurationBuckets []float64 `yaml:"duration_buckets"`
}

// TracingConfig contains OpenTelemetry tracing configuration.
type TracingConfig struct {
	// Enabled turns on span export for coordinator operations.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Endpoint is the OTLP gRPC collector address.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// ServiceName is reported as service.name on every span.
	// Default: "stmtdiag"
	ServiceName string `yaml:"service_name"`

	// Sampler is the sampling strategy: "always", "never", "ratio".
	// Default: "ratio"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the share of traces sampled by the "ratio" sampler.
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// Insecure disables TLS towards the collector.
	// Default: true
	Insecure bool `yaml:"insecure"`

	// Timeout bounds each export.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}
