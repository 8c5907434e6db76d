// Package cache stores computed layouts and rendered artifacts.
//
// Three backends share the [Cache] interface: [NullCache] disables caching,
// [FileCache] keeps entries on disk for the CLI, and [RedisCache] serves the
// HTTP API. Keys come from a [Keyer] so every caller derives the same key for
// the same document and options.
//
// Caching is best-effort: callers ignore Set errors and treat Get errors as
// misses.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend.
	Close() error
}

// Entry lifetimes per kind.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)
