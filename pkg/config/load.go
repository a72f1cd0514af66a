package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable override.
const EnvPrefix = "STMTDIAG_"

// LoadConfig loads configuration from a YAML file at the specified path.
// It starts from NewDefault, decodes the file over it, applies defaults to
// fields the file cleared, and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg := NewDefault()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and
// applies environment variable overrides named STMTDIAG_SECTION_FIELD (e.g.
// STMTDIAG_STORE_PATH). Environment variables take precedence over the file.
//
// An empty path skips the file: defaults plus environment overrides.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	var cfg *Config
	if path == "" {
		cfg = NewDefault()
	} else {
		var err error
		if cfg, err = LoadConfig(path); err != nil {
			return nil, err
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to cfg. A
// variable that cannot be parsed is reported as a validation error.
func applyEnvOverrides(cfg *Config) error {
	env := envReader{}

	// Store overrides
	env.str("STORE_DRIVER", &cfg.Store.Driver)
	env.str("STORE_PATH", &cfg.Store.Path)
	env.integer("STORE_MAX_OPEN_CONNS", &cfg.Store.MaxOpenConns)
	env.integer("STORE_MAX_IDLE_CONNS", &cfg.Store.MaxIdleConns)
	env.boolean("STORE_WAL_MODE", &cfg.Store.WALMode)
	env.duration("STORE_BUSY_TIMEOUT", &cfg.Store.BusyTimeout)

	// Coordinator overrides
	env.str("COORDINATOR_CREATE_MODE", &cfg.Coordinator.CreateMode)

	// Monitor overrides
	env.boolean("MONITOR_ENABLED", &cfg.Monitor.Enabled)
	env.str("MONITOR_SCHEDULE", &cfg.Monitor.Schedule)

	// Server overrides
	env.str("SERVER_LISTEN_ADDRESS", &cfg.Server.ListenAddress)
	env.duration("SERVER_READ_TIMEOUT", &cfg.Server.ReadTimeout)
	env.duration("SERVER_WRITE_TIMEOUT", &cfg.Server.WriteTimeout)
	env.duration("SERVER_SHUTDOWN_TIMEOUT", &cfg.Server.ShutdownTimeout)

	// Telemetry overrides
	env.str("TELEMETRY_LOGGING_LEVEL", &cfg.Telemetry.Logging.Level)
	env.str("TELEMETRY_LOGGING_FORMAT", &cfg.Telemetry.Logging.Format)
	env.boolean("TELEMETRY_LOGGING_ADD_SOURCE", &cfg.Telemetry.Logging.AddSource)
	env.boolean("TELEMETRY_METRICS_ENABLED", &cfg.Telemetry.Metrics.Enabled)
	env.str("TELEMETRY_METRICS_PATH", &cfg.Telemetry.Metrics.Path)
	env.boolean("TELEMETRY_TRACING_ENABLED", &cfg.Telemetry.Tracing.Enabled)
	env.str("TELEMETRY_TRACING_ENDPOINT", &cfg.Telemetry.Tracing.Endpoint)
	env.str("TELEMETRY_TRACING_SAMPLER", &cfg.Telemetry.Tracing.Sampler)

	if len(env.errs) > 0 {
		return ValidationError{Errors: env.errs}
	}
	return nil
}

// envReader reads STMTDIAG_* variables into config fields and collects
// parse failures.
type envReader struct {
	errs []FieldError
}

func (r *envReader) lookup(name string) (string, bool) {
	val := os.Getenv(EnvPrefix + name)
	return val, val != ""
}

func (r *envReader) fail(name, val string, err error) {
	r.errs = append(r.errs, FieldError{
		Field:   EnvPrefix + name,
		Message: fmt.Sprintf("invalid value %q: %v", val, err),
	})
}

func (r *envReader) str(name string, dst *string) {
	if val, ok := r.lookup(name); ok {
		*dst = val
	}
}

func (r *envReader) integer(name string, dst *int) {
	if val, ok := r.lookup(name); ok {
		i, err := strconv.Atoi(val)
		if err != nil {
			r.fail(name, val, err)
			return
		}
		*dst = i
	}
}

func (r *envReader) boolean(name string, dst *bool) {
	if val, ok := r.lookup(name); ok {
		b, err := strconv.ParseBool(val)
		if err != nil {
			r.fail(name, val, err)
			return
		}
		*dst = b
	}
}

func (r *envReader) duration(name string, dst *time.Duration) {
	if val, ok := r.lookup(name); ok {
		d, err := time.ParseDuration(val)
		if err != nil {
			r.fail(name, val, err)
			return
		}
		*dst = d
	}
}
