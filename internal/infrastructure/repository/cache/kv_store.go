package cache

import (
	"context"
	"time"

	"github.com/riskibarqy/novastream/internal/domain/account"
	basecache "github.com/riskibarqy/novastream/internal/platform/cache"
)

const (
	// One entry per client account; the cap only matters for very busy instances.
	maxCachedAccounts = 10000
	// Shared loads outlive the caller that started them, so they carry their own deadline.
	loadTimeout = 5 * time.Second
)

type cachedValue struct {
	value  string
	exists bool
}

// KVStore is a read-through cache in front of a remote account store.
// Writes go to next first and refresh the cached entry only on success.
type KVStore struct {
	next  account.Storage
	cache *basecache.Store[cachedValue]
}

// NewKVStore wraps next with a fresh in-process cache. A zero ttl never expires entries.
func NewKVStore(next account.Storage, ttl time.Duration) *KVStore {
	return &KVStore{next: next, cache: basecache.NewStore[cachedValue](ttl, maxCachedAccounts)}
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	cached, err := s.cache.GetOrLoad(ctx, cacheKey(key), func(ctx context.Context) (cachedValue, error) {
		ctx, cancel := context.WithTimeout(ctx, loadTimeout)
		defer cancel()
		value, exists, err := s.next.Get(ctx, key)
		if err != nil {
			return cachedValue{}, err
		}
		return cachedValue{value: value, exists: exists}, nil
	})
	if err != nil {
		return "", false, err
	}

	return cached.value, cached.exists, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	if err := s.next.Set(ctx, key, value); err != nil {
		s.cache.Delete(ctx, cacheKey(key))
		return err
	}

	s.cache.Set(ctx, cacheKey(key), cachedValue{value: value, exists: true})
	return nil
}

func cacheKey(key string) string {
	return "kv:" + key
}
