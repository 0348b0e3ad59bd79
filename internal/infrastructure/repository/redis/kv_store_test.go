package redis

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*KVStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	store, err := Dial(t.Context(), Config{URL: "redis://" + mr.Addr(), Prefix: "novastream:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store, mr
}

func TestKVStore_GetSet(t *testing.T) {
	t.Parallel()

	store, mr := newTestStore(t)
	ctx := t.Context()

	_, ok, err := store.Get(ctx, "novaStreamAccount")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "novaStreamAccount", `{"plan":"Free"}`))

	value, ok, err := store.Get(ctx, "novaStreamAccount")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"plan":"Free"}`, value)

	raw, err := mr.Get("novaStreamAccount")
	assert.Error(t, err, "key must be namespaced by prefix")
	assert.Empty(t, raw)
	raw, err = mr.Get("novastream:novaStreamAccount")
	require.NoError(t, err)
	assert.Equal(t, `{"plan":"Free"}`, raw)
	assert.Zero(t, mr.TTL("novastream:novaStreamAccount"))
}

func TestKVStore_SurfacesConnectionErrors(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1})
	store := NewKVStore(client, "")
	t.Cleanup(func() { _ = store.Close() })

	mr.Close()

	if _, _, err := store.Get(t.Context(), "k"); err == nil {
		t.Fatalf("expected get error after server shutdown")
	}
	if err := store.Set(t.Context(), "k", "v"); err == nil {
		t.Fatalf("expected set error after server shutdown")
	}
}

func TestDial_RejectsBadURL(t *testing.T) {
	t.Parallel()

	if _, err := Dial(t.Context(), Config{}); err == nil {
		t.Fatalf("expected error for empty url")
	}
	if _, err := Dial(t.Context(), Config{URL: "http://not-redis"}); err == nil {
		t.Fatalf("expected error for non-redis scheme")
	}
}
