package repository

import (
	"context"

	"github.com/riskibarqy/novastream/internal/domain/account"
	"github.com/riskibarqy/novastream/internal/platform/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("novastream/internal/infrastructure/repository")

// InstrumentedKVStore records a span and a storage metric around every call.
type InstrumentedKVStore struct {
	next    account.Storage
	driver  string
	metrics *metrics.Registry
}

func Instrument(next account.Storage, driver string, registry *metrics.Registry) *InstrumentedKVStore {
	return &InstrumentedKVStore{next: next, driver: driver, metrics: registry}
}

func (s *InstrumentedKVStore) Get(ctx context.Context, key string) (string, bool, error) {
	ctx, span := s.start(ctx, "get", key)
	defer span.End()

	value, found, err := s.next.Get(ctx, key)
	span.SetAttributes(attribute.Bool("kv.found", found))
	s.finish(span, "get", err)
	return value, found, err
}

func (s *InstrumentedKVStore) Set(ctx context.Context, key, value string) error {
	ctx, span := s.start(ctx, "set", key)
	defer span.End()

	err := s.next.Set(ctx, key, value)
	span.SetAttributes(attribute.Int("kv.value_bytes", len(value)))
	s.finish(span, "set", err)
	return err
}

func (s *InstrumentedKVStore) start(ctx context.Context, op, key string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "repository.kv."+op, trace.WithAttributes(
		attribute.String("kv.driver", s.driver),
		attribute.String("kv.key", key),
	))
}

func (s *InstrumentedKVStore) finish(span trace.Span, op string, err error) {
	s.metrics.IncStorageOp(s.driver, op, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
