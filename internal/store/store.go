package store

import (
	"context"
	"time"
)

// KeyValueStore is the storage capability required by the attribution
// core: string keys and values, whole-value overwrite, idempotent
// delete.
//
// A positive ttl on Set asks the medium to expire the entry on its own.
// Backends without native expiry ignore ttl; see the package comment.
type KeyValueStore interface {
	// Get returns the value under key. ok is false when the key is
	// absent or the medium has already expired it.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set overwrites the value under key.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
