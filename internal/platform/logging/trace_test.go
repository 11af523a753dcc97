package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const testTraceparent = "00-3d23d071b5bfd6579171efce907685cb-08f067aa0ba902b7-01"

func TestTraceFields(t *testing.T) {
	fields := traceFields(testTraceparent, "test-project")
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(fields))
	}
	if fields[0].String != "projects/test-project/traces/3d23d071b5bfd6579171efce907685cb" {
		t.Fatalf("unexpected trace field: %+v", fields[0])
	}
	if fields[1].String != "08f067aa0ba902b7" {
		t.Fatalf("unexpected span field: %+v", fields[1])
	}
	if fields[2].Type != zapcore.BoolType || fields[2].Integer != 1 {
		t.Fatalf("expected sampled=true, got %+v", fields[2])
	}
}

func TestTraceFieldsRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		projectID string
	}{
		{"no project", testTraceparent, ""},
		{"empty header", "", "test-project"},
		{"short trace id", "00-3d23d071-08f067aa0ba902b7-01", "test-project"},
		{"legacy format", "3d23d071b5bfd6579171efce907685cb/123;o=1", "test-project"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if fields := traceFields(tt.header, tt.projectID); fields != nil {
				t.Fatalf("expected nil fields, got %+v", fields)
			}
			if res := traceResource(tt.header, tt.projectID); res != "" {
				t.Fatalf("expected empty resource, got %q", res)
			}
		})
	}
}

func TestLoggerWithTraceAddsRequestID(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	logger := loggerWithTrace(zap.New(core), "", "", "req-1")
	logger.Info("hello")

	entries := recorded.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["requestId"]; got != "req-1" {
		t.Fatalf("expected requestId req-1, got %v", got)
	}
}

func TestLoggerWithTraceNilBase(t *testing.T) {
	if loggerWithTrace(nil, "", "", "") == nil {
		t.Fatal("expected a no-op logger")
	}
}
