package storage

import (
	"context"
	"errors"
)

// Storage is the key-value collaborator the cart store persists
// through. Consumers define this interface, not the backends.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

var ErrNotFound = errors.New("key not found")
