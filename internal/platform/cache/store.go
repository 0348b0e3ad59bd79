package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

var errNilLoader = errors.New("cache: loader is required")

type item[V any] struct {
	value   V
	expires time.Time
}

// Store is an in-process TTL cache shared by provider responses and account
// reads. A zero ttl keeps entries until deleted; a zero maxEntries means no cap.
// Concurrent misses on one key collapse into a single load.
type Store[V any] struct {
	ttl        time.Duration
	maxEntries int
	now        func() time.Time

	mu     sync.RWMutex
	items  map[string]item[V]
	flight singleflight.Group
}

func NewStore[V any](ttl time.Duration, maxEntries int) *Store[V] {
	return &Store[V]{
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
		items:      make(map[string]item[V]),
	}
}

func (s *Store[V]) expired(it item[V], at time.Time) bool {
	return s.ttl > 0 && !it.expires.After(at)
}

func (s *Store[V]) Get(_ context.Context, key string) (V, bool) {
	s.mu.RLock()
	it, ok := s.items[key]
	s.mu.RUnlock()

	if !ok {
		var zero V
		return zero, false
	}
	if s.expired(it, s.now()) {
		s.Delete(context.Background(), key)
		var zero V
		return zero, false
	}
	return it.value, true
}

func (s *Store[V]) Set(_ context.Context, key string, value V) {
	if key == "" {
		return
	}

	now := s.now()
	it := item[V]{value: value}
	if s.ttl > 0 {
		it.expires = now.Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[key]; !exists && s.maxEntries > 0 && len(s.items) >= s.maxEntries {
		s.evictLocked(now)
	}
	s.items[key] = it
}

// evictLocked drops every expired entry, or one arbitrary entry when nothing
// has expired yet.
func (s *Store[V]) evictLocked(now time.Time) {
	before := len(s.items)
	for key, it := range s.items {
		if s.expired(it, now) {
			delete(s.items, key)
		}
	}
	if len(s.items) < before {
		return
	}
	for key := range s.items {
		delete(s.items, key)
		return
	}
}

func (s *Store[V]) Delete(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
}

func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// GetOrLoad returns the cached value or calls loader, once per key across
// concurrent callers. The shared load runs without the first caller's
// cancellation, so loader must bound itself; each caller still stops waiting
// when its own ctx ends. Failed loads are not cached. An empty key bypasses the cache.
func (s *Store[V]) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (V, error)) (V, error) {
	var zero V
	if loader == nil {
		return zero, errNilLoader
	}
	if key == "" {
		return loader(ctx)
	}
	if v, ok := s.Get(ctx, key); ok {
		return v, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := s.flight.DoChan(key, func() (any, error) {
		if v, ok := s.Get(loadCtx, key); ok {
			return v, nil
		}
		v, err := loader(loadCtx)
		if err != nil {
			return nil, err
		}
		s.Set(loadCtx, key, v)
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		v, ok := res.Val.(V)
		if !ok {
			return zero, fmt.Errorf("cache: unexpected value type %T for %q", res.Val, key)
		}
		return v, nil
	}
}
