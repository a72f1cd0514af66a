// Package config provides configuration management for stmtdiag.
//
// This package loads, validates and manages configuration from YAML files
// with environment variable overrides.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("stmtdiag.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("stmtdiag.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention STMTDIAG_SECTION_FIELD.
// For example:
//
//   - STMTDIAG_STORE_PATH overrides store.path
//   - STMTDIAG_COORDINATOR_CREATE_MODE overrides coordinator.create_mode
//   - STMTDIAG_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Singleton Pattern
//
//	if err := config.Initialize("stmtdiag.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//	cfg := config.GetConfig()
//
// # Hot Reload
//
// Watcher reloads the file on change and passes the new configuration to a
// callback; "stmtdiag serve" uses it to apply the log level without a
// restart. Invalid files are rejected and the previous configuration stays.
//
// # Example Configuration
//
//	store:
//	  driver: "sqlite"
//	  path: "data/stmtdiag.db"
//
//	coordinator:
//	  create_mode: "atomic"
//
//	monitor:
//	  schedule: "*/5 * * * *"
//
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "json"
//	  tracing:
//	    enabled: true
//	    endpoint: "otel-collector:4317"
//	    sampler: "ratio"
//	    sample_ratio: 0.25
package config
