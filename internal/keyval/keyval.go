package keyval

import (
	"context"
	"errors"
)

// The engine persists exactly three collections, each under a fixed key.
const (
	KeyProfile  = "profile"
	KeyMeals    = "meals"
	KeyWorkouts = "workouts"
)

var ErrKeyNotFound = errors.New("key not found")

var _ Store = (*DiskStore)(nil)
var _ Store = (*MemoryStore)(nil)
var _ Store = (*TestStore)(nil)

// Store moves opaque byte blobs in and out of local storage.
// Serialization and decode-failure recovery are the caller's concern.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}
