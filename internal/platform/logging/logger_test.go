package logging

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_WritesKeyValueFields(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(LevelDebug)
	logger := FromZap(zap.New(core)).With("component", "upstream")

	logger.Warn("request failed", "status", 503, "error", errors.New("boom"), "dangling")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "upstream", fields["component"])
	assert.EqualValues(t, 503, fields["status"])
	assert.Equal(t, "boom", fields["error"])
	assert.Contains(t, fields, "dangling")
}

func TestLogger_AddsTraceFieldsWhenSpanIsValid(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(LevelInfo)
	logger := FromZap(zap.New(core))

	traceID, _ := trace.TraceIDFromHex("0af7651916cd43dd8448eb211c80319c")
	spanID, _ := trace.SpanIDFromHex("b7ad6b7169203331")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.InfoContext(ctx, "traced")
	logger.Info("untraced")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "0af7651916cd43dd8448eb211c80319c", entries[0].ContextMap()["trace_id"])
	assert.NotContains(t, entries[1].ContextMap(), "trace_id")
}

func TestLogger_LevelFiltering(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(LevelWarn)
	logger := FromZap(zap.New(core))

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Error("shown")

	if got := logs.Len(); got != 1 {
		t.Fatalf("unexpected log count: got=%d want=1", got)
	}
}

func TestNew_WithFileSink(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "service.log")
	logger := New(LevelInfo, FileConfig{Path: path, MaxSizeMB: 1})
	logger.Info("file sink ready")
	_ = logger.Sync()

	if logger.Core() == nil {
		t.Fatalf("expected non-nil core")
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if logger.With("k", "v") == nil {
		t.Fatalf("expected nop logger from nil receiver")
	}
}
