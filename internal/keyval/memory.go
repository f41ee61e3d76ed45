package keyval

import (
	"context"
	"errors"

	"github.com/coocood/freecache"
)

const defaultCacheSizeMB = 8

// MemoryStore is an ephemeral gateway backed by freecache.
// Used when no data dir is configured and in tests.
type MemoryStore struct {
	cache *freecache.Cache
}

func NewMemoryStore(cacheSizeMB int) *MemoryStore {
	if cacheSizeMB <= 0 {
		cacheSizeMB = defaultCacheSizeMB
	}
	megabyte := 1024 * 1024
	return &MemoryStore{
		cache: freecache.NewCache(cacheSizeMB * megabyte),
	}
}

func (ms *MemoryStore) Load(_ context.Context, key string) ([]byte, error) {
	data, err := ms.cache.Get([]byte(key))
	if err != nil {
		if errors.Is(err, freecache.ErrNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return data, nil
}

func (ms *MemoryStore) Save(_ context.Context, key string, data []byte) error {
	// expire 0 -> entries never expire
	return ms.cache.Set([]byte(key), data, 0)
}

func (ms *MemoryStore) Delete(_ context.Context, key string) error {
	ms.cache.Del([]byte(key))
	return nil
}
