// Package handoff keeps creation-time resolutions until the matching world
// load consumes them.
package handoff

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/haukened/rr-gamerules/internal/rules/domain"
	"github.com/haukened/rr-gamerules/internal/rules/services/lifecycle"
)

// Cache is an LRU-bounded map from world id to pending resolution. A world
// that is created but never loaded eventually falls out instead of leaking.
type Cache struct {
	lru       *lru.Cache[string, domain.Resolution]
	puts      uint64
	takes     uint64
	evictions uint64
}

// disabledCache never holds anything, so every load resolves fresh.
type disabledCache struct{}

// New creates a hand-off cache holding up to size pending worlds. If size <= 0
// a disabled cache is returned.
func New(size int) (lifecycle.HandoffCache, error) {
	if size <= 0 {
		return disabledCache{}, nil
	}
	c, err := lru.New[string, domain.Resolution](size)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: c}, nil
}

// Put records the resolution for worldID, replacing any previous one.
func (c *Cache) Put(worldID string, r domain.Resolution) {
	atomic.AddUint64(&c.puts, 1)
	if evicted := c.lru.Add(worldID, r); evicted {
		atomic.AddUint64(&c.evictions, 1)
	}
}

// Take returns and removes the resolution for worldID.
func (c *Cache) Take(worldID string) (domain.Resolution, bool) {
	r, ok := c.lru.Peek(worldID)
	if !ok {
		return domain.Resolution{}, false
	}
	c.lru.Remove(worldID)
	atomic.AddUint64(&c.takes, 1)
	return r, true
}

// Len returns the number of pending worlds.
func (c *Cache) Len() int { return c.lru.Len() }

// Stats returns cumulative put/take/eviction counters.
func (c *Cache) Stats() (puts, takes, evictions uint64) {
	return atomic.LoadUint64(&c.puts), atomic.LoadUint64(&c.takes), atomic.LoadUint64(&c.evictions)
}

func (disabledCache) Put(string, domain.Resolution) {}

func (disabledCache) Take(string) (domain.Resolution, bool) {
	return domain.Resolution{}, false
}

var _ lifecycle.HandoffCache = (*Cache)(nil)
var _ lifecycle.HandoffCache = disabledCache{}
