package sqlexec

import (
	"fmt"
	"time"
)

// TimeLayout is the storage format of timestamp columns. It is fixed width
// and always UTC, so string comparison in SQL orders timestamps correctly.
const TimeLayout = "2006-01-02T15:04:05.000000000Z"

// MaxTime is the latest timestamp TimeLayout can hold.
var MaxTime = time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC)

// FormatTime encodes t for a timestamp column. Times after MaxTime are
// stored as MaxTime.
func FormatTime(t time.Time) string {
	if t.After(MaxTime) {
		t = MaxTime
	}
	return t.UTC().Format(TimeLayout)
}

// ParseTime decodes a timestamp column written by FormatTime.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}

// FormatDuration encodes d for a duration column (milliseconds). A nonzero
// duration shorter than a millisecond is stored as one millisecond.
func FormatDuration(d time.Duration) int64 {
	ms := d.Milliseconds()
	switch {
	case ms == 0 && d > 0:
		return 1
	case ms == 0 && d < 0:
		return -1
	}
	return ms
}

// ParseDuration decodes a duration column.
func ParseDuration(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
