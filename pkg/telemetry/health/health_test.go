package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"mercator-hq/stmtdiag/internal/testutil"
)

func TestNew(t *testing.T) {
	if c := New(0); c.checkTimeout != 5*time.Second {
		t.Errorf("default timeout = %v, want 5s", c.checkTimeout)
	}
	if c := New(time.Second); c.checkTimeout != time.Second {
		t.Errorf("timeout = %v, want 1s", c.checkTimeout)
	}
}

func TestRegisterAndUnregisterCheck(t *testing.T) {
	checker := New(time.Second)
	ok := func(ctx context.Context) error { return nil }

	checker.RegisterCheck("store", ok)
	checker.RegisterCheck("monitor", ok)
	checker.RegisterCheck("store", ok) // replace

	if diff := cmp.Diff([]string{"monitor", "store"}, checker.Checks()); diff != "" {
		t.Errorf("Checks() mismatch (-want +got):\n%s", diff)
	}

	checker.UnregisterCheck("monitor")
	if diff := cmp.Diff([]string{"store"}, checker.Checks()); diff != "" {
		t.Errorf("Checks() after unregister mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckReadiness(t *testing.T) {
	tests := []struct {
		name       string
		checks     map[string]CheckFunc
		wantStatus string
		wantFailed []string
	}{
		{
			name:       "no checks",
			checks:     nil,
			wantStatus: StatusReady,
		},
		{
			name: "all healthy",
			checks: map[string]CheckFunc{
				"store":   func(ctx context.Context) error { return nil },
				"monitor": func(ctx context.Context) error { return nil },
			},
			wantStatus: StatusReady,
		},
		{
			name: "one unhealthy",
			checks: map[string]CheckFunc{
				"store":   func(ctx context.Context) error { return errors.New("database is locked") },
				"monitor": func(ctx context.Context) error { return nil },
			},
			wantStatus: StatusDegraded,
			wantFailed: []string{"store"},
		},
		{
			name: "timeout",
			checks: map[string]CheckFunc{
				"slow": func(ctx context.Context) error {
					<-ctx.Done()
					time.Sleep(50 * time.Millisecond)
					return nil
				},
			},
			wantStatus: StatusDegraded,
			wantFailed: []string{"slow"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := New(20 * time.Millisecond)
			for name, check := range tt.checks {
				checker.RegisterCheck(name, check)
			}

			status := checker.CheckReadiness(context.Background())
			if status.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", status.Status, tt.wantStatus)
			}
			if len(status.Checks) != len(tt.checks) {
				t.Errorf("got %d results, want %d", len(status.Checks), len(tt.checks))
			}
			for _, name := range tt.wantFailed {
				if status.Checks[name].Status != StatusUnhealthy {
					t.Errorf("check %q = %+v, want unhealthy", name, status.Checks[name])
				}
			}
		})
	}
}

func TestCheckReadiness_TimeoutMessage(t *testing.T) {
	checker := New(10 * time.Millisecond)
	checker.RegisterCheck("slow", func(ctx context.Context) error {
		time.Sleep(200 * time.Millisecond)
		return nil
	})

	result := checker.CheckReadiness(context.Background()).Checks["slow"]
	if result.Message != ErrCheckTimeout.Error() {
		t.Errorf("Message = %q, want %q", result.Message, ErrCheckTimeout.Error())
	}
}

func TestStoreCheck(t *testing.T) {
	exec := testutil.TempExecutor(t)
	check := StoreCheck(exec)

	if err := check(context.Background()); err != nil {
		t.Errorf("StoreCheck on open store failed: %v", err)
	}

	exec.Close()
	if err := check(context.Background()); err == nil {
		t.Error("StoreCheck on closed store should fail")
	}
}

type fakeMonitor struct {
	running bool
	next    *time.Time
}

func (m fakeMonitor) IsRunning() bool     { return m.running }
func (m fakeMonitor) NextRun() *time.Time { return m.next }

func TestMonitorCheck(t *testing.T) {
	next := time.Now().Add(time.Minute)

	tests := []struct {
		name    string
		monitor fakeMonitor
		wantErr bool
	}{
		{"running", fakeMonitor{running: true, next: &next}, false},
		{"stopped", fakeMonitor{running: false}, true},
		{"no next run", fakeMonitor{running: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MonitorCheck(tt.monitor)(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("MonitorCheck() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLivenessHandler(t *testing.T) {
	checker := New(time.Second)
	checker.RegisterCheck("store", func(ctx context.Context) error { return errors.New("down") })

	tests := []struct {
		method   string
		wantCode int
		wantBody bool
	}{
		{http.MethodGet, http.StatusOK, true},
		{http.MethodHead, http.StatusOK, false},
		{http.MethodPost, http.StatusMethodNotAllowed, true},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			w := httptest.NewRecorder()
			checker.LivenessHandler()(w, httptest.NewRequest(tt.method, "/health", nil))

			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantCode)
			}
			if (w.Body.Len() > 0) != tt.wantBody {
				t.Errorf("body = %q, wantBody %v", w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestReadinessHandler(t *testing.T) {
	checker := New(time.Second)
	healthy := true
	checker.RegisterCheck("store", func(ctx context.Context) error {
		if !healthy {
			return errors.New("request store unreachable")
		}
		return nil
	})

	w := httptest.NewRecorder()
	checker.ReadinessHandler()(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if w.Code != http.StatusOK {
		t.Errorf("healthy status = %d, want 200", w.Code)
	}

	healthy = false
	w = httptest.NewRecorder()
	checker.ReadinessHandler()(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("unhealthy status = %d, want 503", w.Code)
	}

	var status HealthStatus
	if err := json.NewDecoder(w.Body).Decode(&status); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if status.Status != StatusDegraded {
		t.Errorf("Status = %q, want %q", status.Status, StatusDegraded)
	}
	if !strings.Contains(status.Checks["store"].Message, "unreachable") {
		t.Errorf("store message = %q", status.Checks["store"].Message)
	}
}

func TestRegister(t *testing.T) {
	mux := http.NewServeMux()
	Register(mux, New(time.Second), NewVersionInfo("1.2.3", "abc123", "2025-11-20"))

	for _, path := range []string{"/health", "/ready", "/version"} {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, w.Code)
		}
	}

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/version", nil))
	var info VersionInfo
	if err := json.NewDecoder(w.Body).Decode(&info); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if info.Version != "1.2.3" || info.Commit != "abc123" || info.GoVersion == "" {
		t.Errorf("version info = %+v", info)
	}
}
