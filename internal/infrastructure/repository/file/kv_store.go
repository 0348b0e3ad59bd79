package file

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/c2FmZQ/storage"
)

const kvDir = "kv"

type kvEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// KVStore persists each key as its own data file under the storage root.
type KVStore struct {
	storage *storage.Storage
	locks   sync.Map
}

func NewKVStore(s *storage.Storage) *KVStore {
	return &KVStore{storage: s}
}

// Open creates the storage rooted at dir. Files are stored unencrypted.
func Open(dir string) (*KVStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("file store directory is required")
	}
	if err := os.MkdirAll(filepath.Join(dir, kvDir), 0o700); err != nil {
		return nil, fmt.Errorf("create file store directory: %w", err)
	}
	return NewKVStore(storage.New(dir, nil)), nil
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	mu := s.lock(key)
	mu.Lock()
	defer mu.Unlock()

	var entry kvEntry
	if err := s.storage.ReadDataFile(filename(key), &entry); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("storage.ReadDataFile: %w", err)
	}

	return entry.Value, true, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	mu := s.lock(key)
	mu.Lock()
	defer mu.Unlock()

	if err := s.storage.SaveDataFile(filename(key), kvEntry{Key: key, Value: value}); err != nil {
		return fmt.Errorf("storage.SaveDataFile: %w", err)
	}
	return nil
}

func (s *KVStore) lock(key string) *sync.Mutex {
	m, _ := s.locks.LoadOrStore(key, &sync.Mutex{})
	return m.(*sync.Mutex)
}

func filename(key string) string {
	return path.Join(kvDir, url.PathEscape(key)+".json")
}
