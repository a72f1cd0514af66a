package config

import "time"

// Default values for configuration fields.
const (
	// Store defaults
	DefaultStoreDriver       = "sqlite"
	DefaultStorePath         = "data/stmtdiag.db"
	DefaultStoreMaxOpenConns = 4
	DefaultStoreMaxIdleConns = 2
	DefaultStoreWALMode      = true
	DefaultStoreBusyTimeout  = 5 * time.Second

	// Coordinator defaults
	DefaultCreateMode = "two_phase"

	// Monitor defaults
	DefaultMonitorEnabled  = true
	DefaultMonitorSchedule = "* * * * *"

	// Server defaults
	DefaultListenAddress   = "127.0.0.1:9090"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultShutdownTimeout = 15 * time.Second

	// Telemetry defaults
	DefaultLoggingLevel     = "info"
	DefaultLoggingFormat    = "json"
	DefaultMetricsEnabled   = true
	DefaultPrometheusPath   = "/metrics"
	DefaultMetricsNamespace = "stmtdiag"
	DefaultMetricsSubsystem = "coordinator"
	DefaultTracingEndpoint  = "localhost:4317"
	DefaultTracingService   = "stmtdiag"
	DefaultTracingSampler   = "ratio"
	DefaultTracingRatio     = 1.0
	DefaultTracingInsecure  = true
	DefaultTracingTimeout   = 10 * time.Second
)

// NewDefault returns a configuration with every default applied. Boolean
// defaults that are true can only be turned off by decoding a file over
// this value, so loading starts from here.
func NewDefault() *Config {
	cfg := &Config{
		Store: StoreConfig{
			WALMode: DefaultStoreWALMode,
		},
		Monitor: MonitorConfig{
			Enabled: DefaultMonitorEnabled,
		},
		Telemetry: TelemetryConfig{
			Metrics: MetricsConfig{
				Enabled: DefaultMetricsEnabled,
			},
			Tracing: TracingConfig{
				Insecure: DefaultTracingInsecure,
			},
		},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults sets defaults for any fields that have zero values. It is
// idempotent and leaves boolean fields alone; see NewDefault.
func ApplyDefaults(cfg *Config) {
	// Store defaults
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = DefaultStoreDriver
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = DefaultStorePath
	}
	if cfg.Store.MaxOpenConns == 0 {
		cfg.Store.MaxOpenConns = DefaultStoreMaxOpenConns
	}
	if cfg.Store.MaxIdleConns == 0 {
		cfg.Store.MaxIdleConns = DefaultStoreMaxIdleConns
	}
	if cfg.Store.BusyTimeout == 0 {
		cfg.Store.BusyTimeout = DefaultStoreBusyTimeout
	}

	// Coordinator defaults
	if cfg.Coordinator.CreateMode == "" {
		cfg.Coordinator.CreateMode = DefaultCreateMode
	}

	// Monitor defaults
	if cfg.Monitor.Schedule == "" {
		cfg.Monitor.Schedule = DefaultMonitorSchedule
	}

	// Server defaults
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultPrometheusPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if cfg.Telemetry.Tracing.Endpoint == "" {
		cfg.Telemetry.Tracing.Endpoint = DefaultTracingEndpoint
	}
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = DefaultTracingService
	}
	if cfg.Telemetry.Tracing.Sampler == "" {
		cfg.Telemetry.Tracing.Sampler = DefaultTracingSampler
	}
	if cfg.Telemetry.Tracing.SampleRatio == 0 {
		cfg.Telemetry.Tracing.SampleRatio = DefaultTracingRatio
	}
	if cfg.Telemetry.Tracing.Timeout == 0 {
		cfg.Telemetry.Tracing.Timeout = DefaultTracingTimeout
	}
}
