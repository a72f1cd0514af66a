package sqlexec

import (
	"context"
	"fmt"
	"strconv"
)

// Statement is a single parameterized SQL statement. Args bind to "?"
// placeholders in order.
type Statement struct {
	SQL  string
	Args []any
}

// Result holds the rows produced by one statement of a batch.
type Result struct {
	Columns []string
	Rows    []Row
}

// Executor runs batches of statements against the request store.
//
// Each Execute call runs in its own transaction: either every statement
// succeeds and the batch commits, or the batch is rolled back and a
// *diagnostics.ExecutionError is returned. Results are returned in
// statement order.
type Executor interface {
	Execute(ctx context.Context, stmts ...Statement) ([]Result, error)
	Close() error
}

// Row maps column names to the values returned by the driver.
type Row map[string]any

// String returns the column as a string. NULL and missing columns yield "".
func (r Row) String(col string) string {
	s, _ := r.NullString(col)
	return s
}

// NullString returns the column as a string and whether it was non-NULL.
func (r Row) NullString(col string) (string, bool) {
	switch v := r[col].(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case []byte:
		return string(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return fmt.Sprint(v), true
	}
}

// Int64 returns the column as an integer. NULL yields 0.
func (r Row) Int64(col string) (int64, error) {
	switch v := r[col].(type) {
	case nil:
		return 0, nil
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	case []byte:
		return strconv.ParseInt(string(v), 10, 64)
	default:
		return 0, fmt.Errorf("column %q: cannot convert %T to int64", col, v)
	}
}

// Float64 returns the column as a float. NULL yields 0.
func (r Row) Float64(col string) (float64, error) {
	switch v := r[col].(type) {
	case nil:
		return 0, nil
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case string:
		return strconv.ParseFloat(v, 64)
	case []byte:
		return strconv.ParseFloat(string(v), 64)
	default:
		return 0, fmt.Errorf("column %q: cannot convert %T to float64", col, v)
	}
}

// Bool returns the column as a boolean. SQLite stores booleans as
// integers; some drivers convert them to bool based on the declared type.
func (r Row) Bool(col string) (bool, error) {
	switch v := r[col].(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case int64:
		return v != 0, nil
	case string:
		return strconv.ParseBool(v)
	case []byte:
		return strconv.ParseBool(string(v))
	default:
		return false, fmt.Errorf("column %q: cannot convert %T to bool", col, v)
	}
}
