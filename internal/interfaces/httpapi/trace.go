package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var apiTracer = otel.Tracer("novastream/internal/interfaces/httpapi")

// Probe and scrape paths are served untraced.
var untracedPaths = map[string]struct{}{
	"/healthz": {},
	"/health":  {},
	"/livez":   {},
	"/readyz":  {},
	"/metrics": {},
}

func shouldTraceRequest(path string) bool {
	_, skip := untracedPaths[strings.ToLower(strings.TrimSpace(path))]
	return !skip
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix)
}

// startSpan opens handler spans under a traced request and tags them with the
// caller's request id and whether the call is bound to a client account.
// Response helpers and untraced requests get a no-op span.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !shouldCreateHTTPAPISpan(name) || !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, trace.SpanFromContext(context.Background())
	}

	attrs := []attribute.KeyValue{
		attribute.Bool("novastream.client_scoped", clientIDFromContext(ctx) != ""),
	}
	if requestID := requestIDFromContext(ctx); requestID != "" {
		attrs = append(attrs, attribute.String("novastream.request_id", requestID))
	}
	return apiTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}
