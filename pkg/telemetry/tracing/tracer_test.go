package tracing

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"mercator-hq/stmtdiag/pkg/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		config      *config.TracingConfig
		wantErr     bool
		wantEnabled bool
	}{
		{
			name:    "nil config",
			wantErr: true,
		},
		{
			name:   "disabled tracing",
			config: &config.TracingConfig{Enabled: false, ServiceName: "test"},
		},
		{
			name: "enabled with ratio sampler",
			config: &config.TracingConfig{
				Enabled:     true,
				Endpoint:    "localhost:4317",
				ServiceName: "test",
				Sampler:     SamplerRatio,
				SampleRatio: 0.5,
				Insecure:    true,
				Timeout:     time.Second,
			},
			wantEnabled: true,
		},
		{
			name: "unknown sampler",
			config: &config.TracingConfig{
				Enabled:     true,
				Endpoint:    "localhost:4317",
				ServiceName: "test",
				Sampler:     "sometimes",
				Insecure:    true,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracer, err := New(tt.config, "test")
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer tracer.Shutdown(context.Background())

			if tracer.Enabled() != tt.wantEnabled {
				t.Errorf("Enabled() = %v, want %v", tracer.Enabled(), tt.wantEnabled)
			}

			_, span := tracer.Start(context.Background(), "test")
			span.End()
		})
	}
}

func TestDisabledTracer_NoopSpans(t *testing.T) {
	tracer, err := New(&config.TracingConfig{}, "test")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	ctx, span := tracer.Start(context.Background(), "noop")
	defer span.End()

	if span.SpanContext().IsValid() {
		t.Error("disabled tracer produced a valid span context")
	}
	if TraceID(ctx) != "" {
		t.Errorf("TraceID() = %q, want empty", TraceID(ctx))
	}
	if err := tracer.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() failed: %v", err)
	}
}

func TestNewWithExporter_RecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracer, err := NewWithExporter(&config.TracingConfig{
		Enabled:     true,
		ServiceName: "stmtdiag-test",
		Sampler:     SamplerAlways,
	}, "1.0.0", sdktrace.WithSpanProcessor(recorder))
	if err != nil {
		t.Fatalf("NewWithExporter() failed: %v", err)
	}
	defer tracer.Shutdown(context.Background())

	ctx, span := tracer.Start(context.Background(), "coordinator.cancel")
	if TraceID(ctx) == "" {
		t.Error("TraceID() empty inside a sampled span")
	}
	span.SetAttributes(OperationAttributes("cancel", "", "7")...)
	SetStatus(span, errors.New("boom"))
	span.End()

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	got := spans[0]
	if got.Name() != "coordinator.cancel" {
		t.Errorf("span name = %q", got.Name())
	}
	if got.Status().Code != codes.Error || got.Status().Description != "boom" {
		t.Errorf("span status = %+v", got.Status())
	}
	if len(got.Events()) != 1 {
		t.Errorf("expected the error recorded as an event, got %d events", len(got.Events()))
	}

	attrs := map[string]string{}
	for _, kv := range got.Attributes() {
		attrs[string(kv.Key)] = kv.Value.AsString()
	}
	if attrs[AttrOperation] != "cancel" || attrs[AttrRequestID] != "7" {
		t.Errorf("unexpected attributes %v", attrs)
	}
	if _, ok := attrs[AttrFingerprint]; ok {
		t.Error("empty fingerprint should not be set")
	}

	var service string
	for _, kv := range got.Resource().Attributes() {
		if kv.Key == "service.name" {
			service = kv.Value.AsString()
		}
	}
	if service != "stmtdiag-test" {
		t.Errorf("service.name = %q", service)
	}
}

func TestCreateSampler(t *testing.T) {
	tests := []struct {
		name     string
		strategy string
		ratio    float64
		wantErr  bool
	}{
		{name: "always", strategy: SamplerAlways},
		{name: "never", strategy: SamplerNever},
		{name: "ratio 0", strategy: SamplerRatio, ratio: 0},
		{name: "ratio 0.5", strategy: SamplerRatio, ratio: 0.5},
		{name: "ratio 1", strategy: SamplerRatio, ratio: 1},
		{name: "ratio above 1", strategy: SamplerRatio, ratio: 1.5, wantErr: true},
		{name: "negative ratio", strategy: SamplerRatio, ratio: -0.1, wantErr: true},
		{name: "unknown", strategy: "sometimes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sampler, err := createSampler(tt.strategy, tt.ratio)
			if (err != nil) != tt.wantErr {
				t.Fatalf("createSampler() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && sampler == nil {
				t.Error("createSampler() returned nil sampler")
			}
		})
	}
}
