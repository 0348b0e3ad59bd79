package observability

import (
	"errors"
	"testing"

	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestShouldSkipUptraceLog(t *testing.T) {
	if !shouldSkipUptraceLog("http request", map[string]any{"path": "/healthz"}) {
		t.Fatalf("expected health check log to be skipped")
	}
	if !shouldSkipUptraceLog("http request", map[string]any{"path": "/metrics"}) {
		t.Fatalf("expected metrics scrape log to be skipped")
	}
	if shouldSkipUptraceLog("http request", map[string]any{"path": "/v1/sports/cricket/live"}) {
		t.Fatalf("did not expect non-probe log to be skipped")
	}
	if shouldSkipUptraceLog("cricapi request failed", map[string]any{"path": "/healthz"}) {
		t.Fatalf("did not expect non-request event to be skipped")
	}
}

func TestBuildOTelLogAttributes(t *testing.T) {
	enc := zapcore.NewMapObjectEncoder()
	for _, field := range []zap.Field{
		zap.String("sport", "cricket"),
		zap.Int("attempt", 2),
		zap.Any("payload", nil),
		zap.Error(errors.New("upstream timeout")),
	} {
		field.AddTo(enc)
	}

	attrs := buildOTelLogAttributes(enc.Fields)
	byKey := make(map[string]otellog.Value, len(attrs))
	for _, attr := range attrs {
		byKey[attr.Key] = attr.Value
	}

	if byKey["sport"].AsString() != "cricket" {
		t.Fatalf("unexpected sport attribute")
	}
	if byKey["attempt"].AsInt64() != 2 {
		t.Fatalf("unexpected attempt attribute")
	}
	if byKey["payload"].Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected payload attribute kind: %s", byKey["payload"].Kind())
	}
	if byKey["error"].AsString() != "upstream timeout" {
		t.Fatalf("unexpected error attribute")
	}
	// attributes come out in key order
	for i := 1; i < len(attrs); i++ {
		if attrs[i-1].Key > attrs[i].Key {
			t.Fatalf("attributes not sorted: %q before %q", attrs[i-1].Key, attrs[i].Key)
		}
	}
}

func TestToOTelLogValue_Map(t *testing.T) {
	v := toOTelLogValue(map[string]any{
		"runs":    187,
		"chasing": true,
	}, 0)
	if v.Kind() != otellog.KindMap {
		t.Fatalf("expected map value, got %s", v.Kind())
	}
	if items := v.AsMap(); len(items) != 2 {
		t.Fatalf("expected 2 map items, got %d", len(items))
	}
}

func TestContextFromTraceFields(t *testing.T) {
	ctx := contextFromTraceFields(map[string]any{
		"trace_id": "4bf92f3577b34da6a3ce929d0e0e4736",
		"span_id":  "00f067aa0ba902b7",
	})
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		t.Fatalf("expected a valid span context")
	}
	if spanCtx.TraceID().String() != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Fatalf("unexpected trace id: %s", spanCtx.TraceID())
	}

	if trace.SpanContextFromContext(contextFromTraceFields(map[string]any{"trace_id": "bogus"})).IsValid() {
		t.Fatalf("expected invalid span context for malformed fields")
	}
}

func TestUptraceLogCore_RespectsLevel(t *testing.T) {
	core := newUptraceLogCore("test", zapcore.WarnLevel)
	if core.Enabled(zapcore.InfoLevel) {
		t.Fatalf("info should be disabled at warn level")
	}
	if !core.Enabled(zapcore.ErrorLevel) {
		t.Fatalf("error should be enabled at warn level")
	}

	child := core.With([]zapcore.Field{zap.String("component", "cricapi")})
	if err := child.Write(zapcore.Entry{Level: zapcore.ErrorLevel, Message: "boom"}, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
}
