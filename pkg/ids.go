package pkg

import "github.com/google/uuid"

// UUIDGenerator is the default ID source for persisted entities.
// Components take it behind a small interface so tests can
// substitute a deterministic generator.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}
