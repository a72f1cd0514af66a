package coordinator

import (
	"math"
	"strings"
	"time"

	"mercator-hq/stmtdiag/pkg/diagnostics"
	"mercator-hq/stmtdiag/pkg/diagnostics/sqlexec"
)

type column struct {
	name  string
	value any
}

// columnSet accumulates the columns of an insert. Values are always bound
// as arguments, never spliced into the SQL text.
type columnSet []column

func (s *columnSet) add(name string, value any) {
	*s = append(*s, column{name: name, value: value})
}

func (s columnSet) names() string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.name
	}
	return strings.Join(names, ", ")
}

func (s columnSet) placeholders() string {
	return strings.TrimSuffix(strings.Repeat("?, ", len(s)), ", ")
}

func (s columnSet) args() []any {
	args := make([]any, len(s))
	for i, c := range s {
		args[i] = c.value
	}
	return args
}

// requestColumns returns the columns written for params. Fingerprint and
// requested_at are always written; optional parameters only when nonzero.
func requestColumns(params diagnostics.CreateParams, requestedAt time.Time) columnSet {
	var cols columnSet
	cols.add("statement_fingerprint", params.Fingerprint)
	cols.add("requested_at", sqlexec.FormatTime(requestedAt))

	if params.SamplingProbability != 0 {
		cols.add("sampling_probability", params.SamplingProbability)
	}
	if params.MinExecutionLatencySeconds != 0 {
		cols.add("min_execution_latency", sqlexec.FormatDuration(seconds(params.MinExecutionLatencySeconds)))
	}
	if params.ExpiresAfterSeconds != 0 {
		cols.add("expires_at", sqlexec.FormatTime(requestedAt.Add(seconds(params.ExpiresAfterSeconds))))
	}

	return cols
}

// seconds converts s to a Duration, saturating at the bounds of the
// Duration range.
func seconds(s float64) time.Duration {
	ns := s * float64(time.Second)
	switch {
	case math.IsNaN(ns):
		return 0
	case ns >= math.MaxInt64:
		return math.MaxInt64
	case ns <= math.MinInt64:
		return math.MinInt64
	}
	return time.Duration(ns)
}
