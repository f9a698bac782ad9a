// Package cache stores rendered artifacts so repeated requests for the same
// frame skip Graphviz.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory, used by the CLI
//   - [RedisCache]: a shared Redis instance, used by `pathplay serve`
//   - [NullCache]: stores nothing, used when caching is disabled
//
// Wrap any backend with [Instrument] to report hits, misses and writes to
// the registered [observability.CacheHooks].
//
// # Keys
//
// Keys are built by a [Keyer] from a hash of the graph document and the
// render options, so a frame is only reused for an identical graph, source,
// step and format:
//
//	k := cache.NewDefaultKeyer()
//	key := k.FrameKey(graphHash, cache.FrameKeyOpts{Source: 0, Step: 3, Format: "svg"})
//	if data, hit, _ := c.Get(ctx, key); hit {
//	    return data, nil
//	}
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the entry for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by backends that can drop every entry at once.
type Clearer interface {
	// Clear removes every entry and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}
