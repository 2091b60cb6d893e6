// Package cache memoizes encoded compile results in an in-process
// ristretto cache.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// Cache wraps a ristretto cache keyed by content hash.
type Cache struct {
	c   *ristretto.Cache[string, []byte]
	ttl time.Duration
}

// New creates a cache holding at most maxCost bytes of values. Entries
// expire after ttl; a zero ttl keeps entries until evicted.
func New(maxCost int64, ttl time.Duration) (*Cache, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: max(maxCost/100*10, 1000),
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}
	return &Cache{c: c, ttl: ttl}, nil
}

// Get returns the cached value for key.
func (c *Cache) Get(key string) ([]byte, bool) {
	return c.c.Get(key)
}

// Set stores value under key. Writes are buffered; call Wait to observe
// them deterministically.
func (c *Cache) Set(key string, value []byte) bool {
	return c.c.SetWithTTL(key, value, int64(len(value)), c.ttl)
}

// Delete removes key.
func (c *Cache) Delete(key string) {
	c.c.Del(key)
}

// Wait blocks until buffered writes are applied.
func (c *Cache) Wait() {
	c.c.Wait()
}

// Close releases cache resources.
func (c *Cache) Close() {
	c.c.Close()
}

// Key derives a cache key for op from its inputs. Inputs are length
// prefixed so distinct argument splits never collide.
func Key(op string, parts ...string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%d:%s", len(op), op)
	for _, p := range parts {
		fmt.Fprintf(h, "%d:%s", len(p), p)
	}
	return op + ":" + hex.EncodeToString(h.Sum(nil))
}
