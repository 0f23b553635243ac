// Package ristretto implements the in-process dedup cache on dgraph-io/ristretto.
package ristretto

import (
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// Dedup suppresses re-delivered envelopes by event ID within a TTL window.
// Upstream event buses deliver at least once; the cache is purely
// in-process, nothing is persisted.
type Dedup struct {
	c   *ristretto.Cache[string, struct{}]
	ttl time.Duration
}

// NewDedup creates a dedup cache holding up to maxEntries event IDs, each
// suppressing duplicates for ttl.
func NewDedup(maxEntries int64, ttl time.Duration) (*Dedup, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, struct{}]{
		NumCounters: maxEntries * 10, // ~10x expected items
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Dedup{c: c, ttl: ttl}, nil
}

// Seen reports whether key was already recorded within the TTL window and
// records it if not. The write is flushed before returning so a duplicate
// arriving immediately after is suppressed.
func (d *Dedup) Seen(key string) bool {
	if _, found := d.c.Get(key); found {
		return true
	}
	d.c.SetWithTTL(key, struct{}{}, 1, d.ttl)
	d.c.Wait()
	return false
}

// Close shuts down the cache and releases resources.
func (d *Dedup) Close() {
	d.c.Close()
}
