package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"mercator-hq/stmtdiag/pkg/diagnostics"
)

// OutputFormat represents the output format for command results.
type OutputFormat string

const (
	// FormatText is an aligned table (default).
	FormatText OutputFormat = "text"
	// FormatJSON is indented JSON.
	FormatJSON OutputFormat = "json"
	// FormatCSV is CSV with a header row.
	FormatCSV OutputFormat = "csv"
)

// ParseOutputFormat validates a --format flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case FormatText, FormatJSON, FormatCSV:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", NewConfigError("format", fmt.Sprintf("unknown output format %q: must be text, json or csv", s))
	}
}

// RequestList is a listing of requests together with the time their state
// was derived at.
type RequestList struct {
	Requests []*diagnostics.Request
	Now      time.Time
}

// requestView is the flattened form of a request used by every format.
type requestView struct {
	ID                  string     `json:"id"`
	Fingerprint         string     `json:"statement_fingerprint"`
	State               string     `json:"state"`
	Cancelled           bool       `json:"cancelled,omitempty"`
	DiagnosticsID       string     `json:"statement_diagnostics_id,omitempty"`
	RequestedAt         time.Time  `json:"requested_at"`
	MinExecutionLatency string     `json:"min_execution_latency,omitempty"`
	ExpiresAt           *time.Time `json:"expires_at,omitempty"`
}

var requestHeaders = []string{"ID", "FINGERPRINT", "STATE", "REQUESTED_AT", "MIN_LATENCY", "EXPIRES_AT", "DIAGNOSTICS_ID"}

func (l RequestList) views() []requestView {
	views := make([]requestView, 0, len(l.Requests))
	for _, r := range l.Requests {
		v := requestView{
			ID:            r.ID,
			Fingerprint:   r.StatementFingerprint,
			State:         string(diagnostics.State(r, l.Now)),
			Cancelled:     diagnostics.IsCancelled(r),
			DiagnosticsID: r.DiagnosticsID,
			RequestedAt:   r.RequestedAt,
			ExpiresAt:     r.ExpiresAt,
		}
		if r.MinExecutionLatency > 0 {
			v.MinExecutionLatency = r.MinExecutionLatency.String()
		}
		views = append(views, v)
	}
	return views
}

func (v requestView) record() []string {
	expires := ""
	if v.ExpiresAt != nil {
		expires = v.ExpiresAt.UTC().Format(time.RFC3339)
	}
	state := v.State
	if v.Cancelled {
		state = "cancelled"
	}
	return []string{
		v.ID,
		v.Fingerprint,
		state,
		v.RequestedAt.UTC().Format(time.RFC3339),
		v.MinExecutionLatency,
		expires,
		v.DiagnosticsID,
	}
}

func statsRecords(s *diagnostics.Stats) [][]string {
	return [][]string{
		{"pending", strconv.FormatInt(s.Pending, 10)},
		{"completed", strconv.FormatInt(s.Completed, 10)},
		{"expired", strconv.FormatInt(s.Expired, 10)},
		{"total", strconv.FormatInt(s.Total(), 10)},
	}
}

// Formatter formats command output.
type Formatter interface {
	FormatTo(w io.Writer, data any) error
}

// TextFormatter renders request lists and stats as aligned tables and any
// other value with %v.
type TextFormatter struct{}

// FormatTo writes data to w in text format.
func (f *TextFormatter) FormatTo(w io.Writer, data any) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	switch d := data.(type) {
	case RequestList:
		if len(d.Requests) == 0 {
			_, err := fmt.Fprintln(w, "No statement diagnostics requests.")
			return err
		}
		writeRow(tw, requestHeaders)
		for _, v := range d.views() {
			record := v.record()
			for i, field := range record {
				if field == "" {
					record[i] = "-"
				}
			}
			writeRow(tw, record)
		}
	case *diagnostics.Stats:
		for _, record := range statsRecords(d) {
			writeRow(tw, record)
		}
	default:
		_, err := fmt.Fprintf(w, "%v\n", data)
		return err
	}

	return tw.Flush()
}

func writeRow(tw *tabwriter.Writer, fields []string) {
	for i, field := range fields {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, field)
	}
	fmt.Fprintln(tw)
}

// JSONFormatter formats output as JSON.
type JSONFormatter struct {
	Indent bool
}

// FormatTo writes data to w in JSON format. Request lists are written as an
// array with the derived state of every request.
func (f *JSONFormatter) FormatTo(w io.Writer, data any) error {
	if list, ok := data.(RequestList); ok {
		data = list.views()
	}

	encoder := json.NewEncoder(w)
	if f.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}

// CSVFormatter formats request lists and stats as CSV.
type CSVFormatter struct{}

// FormatTo writes data to w in CSV format.
func (f *CSVFormatter) FormatTo(w io.Writer, data any) error {
	var records [][]string

	switch d := data.(type) {
	case RequestList:
		records = append(records, requestHeaders)
		for _, v := range d.views() {
			records = append(records, v.record())
		}
	case *diagnostics.Stats:
		records = append([][]string{{"state", "count"}}, statsRecords(d)...)
	default:
		return fmt.Errorf("CSV output is not supported for %T", data)
	}

	csvWriter := csv.NewWriter(w)
	if err := csvWriter.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// NewFormatter creates a new formatter for the specified format.
func NewFormatter(format OutputFormat) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	case FormatCSV:
		return &CSVFormatter{}
	default:
		return &TextFormatter{}
	}
}
