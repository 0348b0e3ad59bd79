package memory

import (
	"testing"
)

func TestKVStore_GetSet(t *testing.T) {
	t.Parallel()

	store := NewKVStore(map[string]string{"seeded": "1"})
	ctx := t.Context()

	if value, ok, err := store.Get(ctx, "seeded"); err != nil || !ok || value != "1" {
		t.Fatalf("unexpected seeded entry: value=%q ok=%v err=%v", value, ok, err)
	}
	if _, ok, _ := store.Get(ctx, "missing"); ok {
		t.Fatalf("expected missing key to be absent")
	}

	if err := store.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if value, _, _ := store.Get(ctx, "k"); value != "v2" {
		t.Fatalf("expected overwrite, got %q", value)
	}

	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "k"); ok {
		t.Fatalf("expected deleted key to be absent")
	}
}

func TestKVStore_SnapshotIsCopy(t *testing.T) {
	t.Parallel()

	store := NewKVStore(nil)
	_ = store.Set(t.Context(), "a", "1")

	snap := store.Snapshot()
	snap["a"] = "mutated"

	if value, _, _ := store.Get(t.Context(), "a"); value != "1" {
		t.Fatalf("snapshot mutation leaked into store: %q", value)
	}
}
