package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/novastream/internal/infrastructure/repository/memory"
)

type countingStore struct {
	*memory.KVStore
	gets   atomic.Int32
	setErr error
}

func (s *countingStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.gets.Add(1)
	return s.KVStore.Get(ctx, key)
}

func (s *countingStore) Set(ctx context.Context, key, value string) error {
	if s.setErr != nil {
		return s.setErr
	}
	return s.KVStore.Set(ctx, key, value)
}

func TestKVStore_ReadThroughCachesMisses(t *testing.T) {
	t.Parallel()

	next := &countingStore{KVStore: memory.NewKVStore(nil)}
	store := NewKVStore(next, time.Minute)
	ctx := t.Context()

	for range 3 {
		if _, ok, err := store.Get(ctx, "k"); err != nil || ok {
			t.Fatalf("expected cached miss, ok=%v err=%v", ok, err)
		}
	}
	if got := next.gets.Load(); got != 1 {
		t.Fatalf("expected one backing read, got %d", got)
	}
}

func TestKVStore_SetRefreshesCache(t *testing.T) {
	t.Parallel()

	next := &countingStore{KVStore: memory.NewKVStore(nil)}
	store := NewKVStore(next, time.Minute)
	ctx := t.Context()

	_, _, _ = store.Get(ctx, "k")
	if err := store.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("set: %v", err)
	}

	value, ok, err := store.Get(ctx, "k")
	if err != nil || !ok || value != "v1" {
		t.Fatalf("unexpected cached value: value=%q ok=%v err=%v", value, ok, err)
	}
	if got := next.gets.Load(); got != 1 {
		t.Fatalf("expected write to refresh cache without reread, got %d reads", got)
	}
}

func TestKVStore_FailedSetEvictsEntry(t *testing.T) {
	t.Parallel()

	next := &countingStore{KVStore: memory.NewKVStore(map[string]string{"k": "old"})}
	store := NewKVStore(next, time.Minute)
	ctx := t.Context()

	_, _, _ = store.Get(ctx, "k")
	next.setErr = errors.New("disk full")
	if err := store.Set(ctx, "k", "new"); err == nil {
		t.Fatalf("expected set error")
	}

	value, _, _ := store.Get(ctx, "k")
	if value != "old" {
		t.Fatalf("expected backing value after failed write, got %q", value)
	}
	if got := next.gets.Load(); got != 2 {
		t.Fatalf("expected eviction to force a reread, got %d reads", got)
	}
}
