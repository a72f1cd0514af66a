package cli

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"mercator-hq/stmtdiag/pkg/diagnostics"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testList() RequestList {
	future := testNow.Add(time.Hour)
	cancelled := diagnostics.CancelledAt
	return RequestList{
		Now: testNow,
		Requests: []*diagnostics.Request{
			{
				ID:                   "1",
				StatementFingerprint: "SELECT _",
				RequestedAt:          testNow.Add(-time.Minute),
				MinExecutionLatency:  1500 * time.Millisecond,
				ExpiresAt:            &future,
			},
			{
				ID:                   "2",
				StatementFingerprint: "INSERT INTO t VALUES (_)",
				Completed:            true,
				DiagnosticsID:        "77",
				RequestedAt:          testNow.Add(-time.Hour),
				ExpiresAt:            &cancelled,
			},
		},
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{in: "", want: FormatText},
		{in: "text", want: FormatText},
		{in: "json", want: FormatJSON},
		{in: "csv", want: FormatCSV},
		{in: "yaml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOutputFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseOutputFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTextFormatter_RequestList(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := (&TextFormatter{}).FormatTo(buf, testList()); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[0], "DIAGNOSTICS_ID") {
		t.Errorf("unexpected header %q", lines[0])
	}
	for _, want := range []string{"SELECT _", "pending", "1.5s", "2025-06-01T13:00:00Z"} {
		if !strings.Contains(lines[1], want) {
			t.Errorf("row 1 %q missing %q", lines[1], want)
		}
	}
	// Completed requests are reported as completed even with the cancel
	// sentinel in expires_at.
	for _, want := range []string{"completed", "77", " - "} {
		if !strings.Contains(lines[2], want) {
			t.Errorf("row 2 %q missing %q", lines[2], want)
		}
	}
}

func TestTextFormatter_Empty(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := (&TextFormatter{}).FormatTo(buf, RequestList{Now: testNow}); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}
	if buf.String() != "No statement diagnostics requests.\n" {
		t.Errorf("FormatTo() = %q", buf.String())
	}
}

func TestTextFormatter_Stats(t *testing.T) {
	buf := &bytes.Buffer{}
	stats := &diagnostics.Stats{Pending: 1, Completed: 2, Expired: 3}
	if err := (&TextFormatter{}).FormatTo(buf, stats); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	want := "pending    1\ncompleted  2\nexpired    3\ntotal      6\n"
	if buf.String() != want {
		t.Errorf("FormatTo() = %q, want %q", buf.String(), want)
	}
}

func TestTextFormatter_Scalar(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := (&TextFormatter{}).FormatTo(buf, "42"); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}
	if buf.String() != "42\n" {
		t.Errorf("FormatTo() = %q", buf.String())
	}
}

func TestJSONFormatter_RequestList(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := (&JSONFormatter{Indent: true}).FormatTo(buf, testList()); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	var got []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not a JSON array: %v\n%s", err, buf.String())
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(got))
	}
	if got[0]["state"] != "pending" || got[0]["min_execution_latency"] != "1.5s" {
		t.Errorf("unexpected first request: %v", got[0])
	}
	if got[1]["state"] != "completed" || got[1]["statement_diagnostics_id"] != "77" {
		t.Errorf("unexpected second request: %v", got[1])
	}
	if _, ok := got[1]["cancelled"]; ok {
		t.Error("completed request must not be reported as cancelled")
	}
}

func TestCSVFormatter(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := (&CSVFormatter{}).FormatTo(buf, testList()); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	records, err := csv.NewReader(buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	want := [][]string{
		requestHeaders,
		{"1", "SELECT _", "pending", "2025-06-01T11:59:00Z", "1.5s", "2025-06-01T13:00:00Z", ""},
		{"2", "INSERT INTO t VALUES (_)", "completed", "2025-06-01T11:00:00Z", "", "1970-01-01T00:00:00Z", "77"},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("CSV mismatch (-want +got):\n%s", diff)
	}
}

func TestCSVFormatter_CancelledAndStats(t *testing.T) {
	cancelled := diagnostics.CancelledAt
	list := RequestList{Now: testNow, Requests: []*diagnostics.Request{
		{ID: "5", StatementFingerprint: "fp", RequestedAt: testNow, ExpiresAt: &cancelled},
	}}

	buf := &bytes.Buffer{}
	if err := (&CSVFormatter{}).FormatTo(buf, list); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}
	if !strings.Contains(buf.String(), "5,fp,cancelled,") {
		t.Errorf("cancelled request not reported: %q", buf.String())
	}

	buf.Reset()
	if err := (&CSVFormatter{}).FormatTo(buf, &diagnostics.Stats{Pending: 2}); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}
	if !strings.HasPrefix(buf.String(), "state,count\npending,2\n") {
		t.Errorf("unexpected stats CSV: %q", buf.String())
	}

	if err := (&CSVFormatter{}).FormatTo(buf, "scalar"); err == nil {
		t.Error("CSV output of a scalar should fail")
	}
}

func TestNewFormatter(t *testing.T) {
	if _, ok := NewFormatter(FormatJSON).(*JSONFormatter); !ok {
		t.Error("NewFormatter(json) should return a JSONFormatter")
	}
	if _, ok := NewFormatter(FormatCSV).(*CSVFormatter); !ok {
		t.Error("NewFormatter(csv) should return a CSVFormatter")
	}
	if _, ok := NewFormatter(FormatText).(*TextFormatter); !ok {
		t.Error("NewFormatter(text) should return a TextFormatter")
	}
}
