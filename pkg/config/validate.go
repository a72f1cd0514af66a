package config

import (
	"fmt"
	"net"
	"sort"
	"strings"

	"github.com/robfig/cron/v3"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "store.path").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. All validation errors are collected and
// returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateStore(&cfg.Store)...)
	errs = append(errs, validateCoordinator(&cfg.Coordinator)...)
	errs = append(errs, validateMonitor(&cfg.Monitor)...)
	errs = append(errs, validateServer(&cfg.Server)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

// oneOf reports whether value is in allowed and renders the allowed set
// for messages.
func oneOf(value string, allowed ...string) (bool, string) {
	quoted := make([]string, len(allowed))
	for i, a := range allowed {
		if a == value {
			return true, ""
		}
		quoted[i] = "'" + a + "'"
	}
	return false, strings.Join(quoted, ", ")
}

func validateStore(cfg *StoreConfig) []FieldError {
	var errs []FieldError

	if ok, allowed := oneOf(cfg.Driver, "sqlite", "sqlite3"); !ok {
		errs = append(errs, FieldError{
			Field:   "store.driver",
			Message: fmt.Sprintf("invalid driver %q: must be one of %s", cfg.Driver, allowed),
		})
	}

	if cfg.Path == "" {
		errs = append(errs, FieldError{
			Field:   "store.path",
			Message: "database path is required",
		})
	}

	if cfg.MaxOpenConns < 0 {
		errs = append(errs, FieldError{
			Field:   "store.max_open_conns",
			Message: "max open connections must be non-negative",
		})
	}
	if cfg.MaxIdleConns < 0 {
		errs = append(errs, FieldError{
			Field:   "store.max_idle_conns",
			Message: "max idle connections must be non-negative",
		})
	}
	if cfg.MaxOpenConns > 0 && cfg.MaxIdleConns > cfg.MaxOpenConns {
		errs = append(errs, FieldError{
			Field:   "store.max_idle_conns",
			Message: "max idle connections cannot exceed max open connections",
		})
	}

	if cfg.BusyTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "store.busy_timeout",
			Message: "busy timeout must be positive",
		})
	}

	return errs
}

func validateCoordinator(cfg *CoordinatorConfig) []FieldError {
	if ok, allowed := oneOf(cfg.CreateMode, "two_phase", "atomic"); !ok {
		return []FieldError{{
			Field:   "coordinator.create_mode",
			Message: fmt.Sprintf("invalid create mode %q: must be one of %s", cfg.CreateMode, allowed),
		}}
	}
	return nil
}

func validateMonitor(cfg *MonitorConfig) []FieldError {
	if !cfg.Enabled {
		return nil
	}

	if cfg.Schedule == "" {
		return []FieldError{{
			Field:   "monitor.schedule",
			Message: "schedule is required when the monitor is enabled",
		}}
	}
	if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
		return []FieldError{{
			Field:   "monitor.schedule",
			Message: fmt.Sprintf("invalid cron expression %q: %v", cfg.Schedule, err),
		}}
	}

	return nil
}

func validateServer(cfg *ServerConfig) []FieldError {
	var errs []FieldError

	if cfg.ListenAddress == "" {
		errs = append(errs, FieldError{
			Field:   "server.listen_address",
			Message: "listen address is required",
		})
	} else if _, _, err := net.SplitHostPort(cfg.ListenAddress); err != nil {
		errs = append(errs, FieldError{
			Field:   "server.listen_address",
			Message: fmt.Sprintf("invalid listen address %q: %v", cfg.ListenAddress, err),
		})
	}

	timeouts := map[string]int64{
		"server.read_timeout":     int64(cfg.ReadTimeout),
		"server.write_timeout":    int64(cfg.WriteTimeout),
		"server.shutdown_timeout": int64(cfg.ShutdownTimeout),
	}
	fields := make([]string, 0, len(timeouts))
	for field := range timeouts {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		if timeouts[field] < 0 {
			errs = append(errs, FieldError{
				Field:   field,
				Message: "timeout must be positive",
			})
		}
	}

	return errs
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	if ok, allowed := oneOf(cfg.Logging.Level, "debug", "info", "warn", "error"); !ok {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("invalid logging level %q: must be one of %s", cfg.Logging.Level, allowed),
		})
	}

	if ok, allowed := oneOf(cfg.Logging.Format, "json", "text", "console"); !ok {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid logging format %q: must be one of %s", cfg.Logging.Format, allowed),
		})
	}

	if cfg.Metrics.Enabled {
		if cfg.Metrics.Path == "" || !strings.HasPrefix(cfg.Metrics.Path, "/") {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.path",
				Message: "metrics path must start with '/' when metrics are enabled",
			})
		}
		if !sort.Float64sAreSorted(cfg.Metrics.DurationBuckets) {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.duration_buckets",
				Message: "duration buckets must be in increasing order",
			})
		}
	}

	if cfg.Tracing.Enabled {
		if cfg.Tracing.Endpoint == "" {
			errs = append(errs, FieldError{
				Field:   "telemetry.tracing.endpoint",
				Message: "tracing endpoint is required when tracing is enabled",
			})
		}
		if ok, allowed := oneOf(cfg.Tracing.Sampler, "always", "never", "ratio"); !ok {
			errs = append(errs, FieldError{
				Field:   "telemetry.tracing.sampler",
				Message: fmt.Sprintf("invalid sampler %q: must be one of %s", cfg.Tracing.Sampler, allowed),
			})
		}
		if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1 {
			errs = append(errs, FieldError{
				Field:   "telemetry.tracing.sample_ratio",
				Message: fmt.Sprintf("sample ratio must be between 0 and 1, got %g", cfg.Tracing.SampleRatio),
			})
		}
	}

	return errs
}
