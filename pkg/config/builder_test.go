package config

import "time"

// ConfigBuilder provides a fluent API for building Config instances in tests.
// It starts from NewDefault and allows selective overrides.
type ConfigBuilder struct {
	cfg *Config
}

// NewTestConfig creates a builder holding a valid default configuration.
func NewTestConfig() *ConfigBuilder {
	return &ConfigBuilder{cfg: NewDefault()}
}

// Build returns the built Config instance.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

func (b *ConfigBuilder) WithStore(driver, path string) *ConfigBuilder {
	b.cfg.Store.Driver = driver
	b.cfg.Store.Path = path
	return b
}

func (b *ConfigBuilder) WithConnections(open, idle int) *ConfigBuilder {
	b.cfg.Store.MaxOpenConns = open
	b.cfg.Store.MaxIdleConns = idle
	return b
}

func (b *ConfigBuilder) WithCreateMode(mode string) *ConfigBuilder {
	b.cfg.Coordinator.CreateMode = mode
	return b
}

func (b *ConfigBuilder) WithMonitor(enabled bool, schedule string) *ConfigBuilder {
	b.cfg.Monitor.Enabled = enabled
	b.cfg.Monitor.Schedule = schedule
	return b
}

func (b *ConfigBuilder) WithListenAddress(addr string) *ConfigBuilder {
	b.cfg.Server.ListenAddress = addr
	return b
}

func (b *ConfigBuilder) WithReadTimeout(d time.Duration) *ConfigBuilder {
	b.cfg.Server.ReadTimeout = d
	return b
}

func (b *ConfigBuilder) WithLogging(level, format string) *ConfigBuilder {
	b.cfg.Telemetry.Logging.Level = level
	b.cfg.Telemetry.Logging.Format = format
	return b
}

func (b *ConfigBuilder) WithMetrics(enabled bool, path string, buckets ...float64) *ConfigBuilder {
	b.cfg.Telemetry.Metrics.Enabled = enabled
	b.cfg.Telemetry.Metrics.Path = path
	b.cfg.Telemetry.Metrics.DurationBuckets = buckets
	return b
}

// WithTracing enables tracing with the given endpoint, sampler and ratio.
func (b *ConfigBuilder) WithTracing(endpoint, sampler string, ratio float64) *ConfigBuilder {
	b.cfg.Telemetry.Tracing.Enabled = true
	b.cfg.Telemetry.Tracing.Endpoint = endpoint
	b.cfg.Telemetry.Tracing.Sampler = sampler
	b.cfg.Telemetry.Tracing.SampleRatio = ratio
	return b
}
