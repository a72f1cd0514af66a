package sqlexec

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"mercator-hq/stmtdiag/pkg/diagnostics"
)

// Supported database/sql driver names.
const (
	// DriverModernc is the pure Go driver from modernc.org/sqlite.
	DriverModernc = "sqlite"
	// DriverMattn is the cgo driver from github.com/mattn/go-sqlite3.
	DriverMattn = "sqlite3"
)

// Config contains configuration for the SQLite executor.
type Config struct {
	// Driver selects the database/sql driver ("sqlite" or "sqlite3").
	// Default: "sqlite"
	Driver string

	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections to the database.
	// Default: 4
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 2
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultConfig returns the default SQLite configuration.
func DefaultConfig() *Config {
	return &Config{
		Driver:       DriverModernc,
		Path:         "data/stmtdiag.db",
		MaxOpenConns: 4,
		MaxIdleConns: 2,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLite implements Executor on a SQLite database file.
type SQLite struct {
	db     *sql.DB
	config *Config
	logger *slog.Logger
}

// NewSQLite opens the database, applies pragmas and creates the schema.
func NewSQLite(config *Config) (*SQLite, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Driver == "" {
		config.Driver = DriverModernc
	}
	if config.Path == "" {
		return nil, diagnostics.NewExecutionError(config.Driver, "open", fmt.Errorf("db path cannot be empty"))
	}

	logger := slog.Default().With("component", "diagnostics.sqlexec", "driver", config.Driver)

	if dir := filepath.Dir(config.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, diagnostics.NewExecutionError(config.Driver, "open", err)
		}
	}

	dsn, err := buildDSN(config)
	if err != nil {
		return nil, diagnostics.NewExecutionError(config.Driver, "open", err)
	}

	db, err := sql.Open(config.Driver, dsn)
	if err != nil {
		return nil, diagnostics.NewExecutionError(config.Driver, "open", err)
	}

	if config.MaxOpenConns > 0 {
		db.SetMaxOpenConns(config.MaxOpenConns)
	}
	if config.MaxIdleConns > 0 {
		db.SetMaxIdleConns(config.MaxIdleConns)
	}

	s := &SQLite{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite executor initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
		"max_open_conns", config.MaxOpenConns,
	)

	return s, nil
}

// buildDSN encodes pragmas in the DSN so every pooled connection gets them.
// The two drivers spell pragmas differently.
func buildDSN(config *Config) (string, error) {
	busyMs := config.BusyTimeout.Milliseconds()
	params := url.Values{}

	switch config.Driver {
	case DriverModernc:
		params.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyMs))
		if config.WALMode {
			params.Add("_pragma", "journal_mode(WAL)")
		}
		params.Add("_pragma", "foreign_keys(1)")
	case DriverMattn:
		params.Set("_busy_timeout", fmt.Sprint(busyMs))
		if config.WALMode {
			params.Set("_journal_mode", "WAL")
		}
		params.Set("_foreign_keys", "1")
	default:
		return "", fmt.Errorf("unsupported driver %q (supported: %s, %s)", config.Driver, DriverModernc, DriverMattn)
	}

	return config.Path + "?" + params.Encode(), nil
}

// initialize creates the schema and verifies the schema version.
func (s *SQLite) initialize(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return diagnostics.NewExecutionError(s.config.Driver, "create_schema", err)
	}
	s.logger.Debug("database schema created")

	if _, err := s.db.ExecContext(ctx, InsertSchemaVersion, SchemaVersion); err != nil {
		return diagnostics.NewExecutionError(s.config.Driver, "insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRowContext(ctx, GetSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return diagnostics.NewExecutionError(s.config.Driver, "get_schema_version", err)
	}

	if version != SchemaVersion {
		return diagnostics.NewExecutionError(s.config.Driver, "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	s.logger.Debug("schema version verified", "version", version)
	return nil
}

// Execute runs stmts in a single transaction and returns one Result per
// statement.
func (s *SQLite) Execute(ctx context.Context, stmts ...Statement) ([]Result, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, diagnostics.NewExecutionError(s.config.Driver, "begin", err)
	}

	results := make([]Result, 0, len(stmts))
	for i, stmt := range stmts {
		res, err := query(ctx, tx, stmt)
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Warn("rollback failed", "error", rbErr)
			}
			return nil, diagnostics.NewStatementError(s.config.Driver, "query", i, err)
		}
		results = append(results, res)
	}

	if err := tx.Commit(); err != nil {
		return nil, diagnostics.NewExecutionError(s.config.Driver, "commit", err)
	}

	return results, nil
}

// query runs one statement and drains its rows.
func query(ctx context.Context, tx *sql.Tx, stmt Statement) (Result, error) {
	rows, err := tx.QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return Result{}, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return Result{}, err
	}

	res := Result{Columns: cols, Rows: []Row{}}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return Result{}, err
		}

		row := make(Row, len(cols))
		for i, col := range cols {
			// Drivers may reuse byte buffers between rows.
			if b, ok := values[i].([]byte); ok {
				values[i] = string(b)
			}
			row[col] = values[i]
		}
		res.Rows = append(res.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return Result{}, err
	}
	return res, nil
}

// Ping verifies the database is reachable.
func (s *SQLite) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return diagnostics.NewExecutionError(s.config.Driver, "ping", err)
	}
	return nil
}

// Backend returns the driver name.
func (s *SQLite) Backend() string {
	return s.config.Driver
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	if err := s.db.Close(); err != nil {
		return diagnostics.NewExecutionError(s.config.Driver, "close", err)
	}
	s.logger.Info("SQLite executor closed")
	return nil
}
