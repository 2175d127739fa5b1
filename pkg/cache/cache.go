// Package cache stores computed layouts and rendered artifacts.
//
// Every backend implements [Cache], a byte-oriented key/value store with
// per-entry TTL:
//
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [MemoryCache]: process-local map, for tests and single-node servers
//   - [RedisCache]: shared cache for multi-instance servers
//   - [MongoCache]: document store with a TTL index
//   - [NullCache]: never stores anything
//
// Keys are produced by a [Keyer] so that every option affecting the output
// participates in the key. [ScopedKeyer] adds a namespace prefix.
package cache

import (
	"context"
	"time"
)

// Default TTLs.
const (
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
	TTLResult   = time.Hour
)

// Cache is a byte store with expiring entries. Get reports a miss with
// found == false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, found bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// Keyer generates cache keys.
type Keyer interface {
	// LayoutKey identifies the layout of the hierarchy whose encoded
	// content hashes to hierarchyHash.
	LayoutKey(hierarchyHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies one rendered output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
	// ResultKey identifies a stored HTTP render result.
	ResultKey(id string) string
}

// NullCache is the "none" backend: every Get misses and writes vanish.
// It does not implement [Clearer]; callers use that to report a disabled cache.
type NullCache struct{}

// NewNullCache returns a NullCache.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
