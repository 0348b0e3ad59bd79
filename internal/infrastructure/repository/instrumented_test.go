package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/riskibarqy/novastream/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/novastream/internal/platform/metrics"
)

type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("unavailable")
}

func (failingStore) Set(context.Context, string, string) error {
	return errors.New("unavailable")
}

func TestInstrumentedKVStore_PassesThroughAndRecords(t *testing.T) {
	t.Parallel()

	registry := metrics.New()
	store := Instrument(memory.NewKVStore(nil), "memory", registry)
	ctx := t.Context()

	if err := store.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, found, err := store.Get(ctx, "k")
	if err != nil || !found || value != "v" {
		t.Fatalf("unexpected get: value=%q found=%v err=%v", value, found, err)
	}

	failing := Instrument(failingStore{}, "redis", registry)
	if _, _, err := failing.Get(ctx, "k"); err == nil {
		t.Fatalf("expected error to pass through")
	}

	count, err := testutil.GatherAndCount(registry.Gatherer(), "novastream_storage_operations_total")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if count != 3 {
		t.Fatalf("unexpected storage series count: got=%d want=3", count)
	}
}

func TestInstrumentedKVStore_NilRegistry(t *testing.T) {
	t.Parallel()

	store := Instrument(memory.NewKVStore(nil), "memory", nil)
	if err := store.Set(t.Context(), "k", "v"); err != nil {
		t.Fatalf("set with nil registry: %v", err)
	}
}
