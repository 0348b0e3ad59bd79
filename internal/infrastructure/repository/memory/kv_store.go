package memory

import (
	"context"
	"sync"
)

// KVStore keeps account records in process memory. Used by tests and local runs.
type KVStore struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewKVStore(seed map[string]string) *KVStore {
	items := make(map[string]string, len(seed))
	for key, value := range seed {
		items[key] = value
	}

	return &KVStore{items: items}
}

func (s *KVStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.items[key]
	return value, ok, nil
}

func (s *KVStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = value
	return nil
}

func (s *KVStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, key)
	return nil
}

// Snapshot returns a copy of every stored entry.
func (s *KVStore) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(s.items))
	for key, value := range s.items {
		out[key] = value
	}
	return out
}
