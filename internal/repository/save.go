package repository

import (
	"context"
)

// SaveRepository is the key/value persistence boundary the save store writes through.
// A single Put replaces the whole value for a key and is atomic in every backend.
type SaveRepository interface {
	// Get returns the stored bytes, or domain.ErrNotFound when the key is absent
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key. Backends with a capacity limit fail with
	// domain.ErrQuotaExceeded.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists every key starting with prefix, sorted
	Keys(ctx context.Context, prefix string) ([]string, error)
}
