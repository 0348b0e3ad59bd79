package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = otel.Tracer("novastream/internal/usecase")

// startUsecaseSpan opens a child span only when the caller is already traced,
// so background feed refreshes don't start orphan traces.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if name == "" || !parent.SpanContext().IsValid() {
		return ctx, trace.SpanFromContext(context.Background())
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func sportAttrs(sport, leagueID string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{attribute.String("novastream.sport", sport)}
	if leagueID != "" {
		attrs = append(attrs, attribute.String("novastream.league_id", leagueID))
	}
	return attrs
}

func matchAttr(matchID string) attribute.KeyValue {
	return attribute.String("novastream.match_id", matchID)
}
