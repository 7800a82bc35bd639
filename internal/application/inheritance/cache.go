package inheritance

import (
	"strconv"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"sportspack/internal/domain"
)

// valueCache stores resolved values with a TTL. Every key carries a
// generation that is bumped on invalidation; a value computed under an
// older generation is never stored, so a delete always wins over a
// racing store.
type valueCache struct {
	mu    sync.Mutex
	store *gocache.Cache
	gens  map[string]uint64
}

func newValueCache(ttl, cleanupInterval time.Duration) *valueCache {
	return &valueCache{
		store: gocache.New(ttl, cleanupInterval),
		gens:  make(map[string]uint64),
	}
}

func cacheKey(nodeID string, attr domain.Attribute) string {
	return "inheritance_" + nodeID + "_" + attr.Key()
}

func (c *valueCache) get(key string) (string, bool) {
	v, ok := c.store.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// generation returns the current generation of key
func (c *valueCache) generation(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[key]
}

// storeIfCurrent caches value only if key was not invalidated since gen
// was observed. It reports whether the value was stored.
func (c *valueCache) storeIfCurrent(key, value string, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[key] != gen {
		return false
	}
	c.store.Set(key, value, gocache.DefaultExpiration)
	return true
}

// delete removes key and advances its generation
func (c *valueCache) delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[key]++
	c.store.Delete(key)
}

func (c *valueCache) len() int {
	return c.store.ItemCount()
}

// flightKey scopes a shared walk to one generation so a caller that
// arrives after an invalidation never joins a walk that started before it
func flightKey(key string, gen uint64) string {
	return key + "#" + strconv.FormatUint(gen, 10)
}
