package sanity

import (
	"encoding/json"
	"time"

	"github.com/viccon/sturdyc"

	"github.com/dogbodymind/go-site/pkg/interfaces"
)

const (
	defaultCacheCapacity = 2048
	cacheShards          = 16
	cacheEvictionPercent = 10
)

// QueryCache is a sharded in-process TTL cache for raw query results. It backs
// the FetchOptions.Cache flag and is safe for concurrent use.
type QueryCache struct {
	inner *sturdyc.Client[json.RawMessage]
}

// NewQueryCache builds a query cache with the given capacity and entry TTL.
func NewQueryCache(capacity int, ttl time.Duration) *QueryCache {
	if capacity <= 0 {
		capacity = defaultCacheCapacity
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &QueryCache{
		inner: sturdyc.New[json.RawMessage](capacity, cacheShards, ttl, cacheEvictionPercent),
	}
}

var _ interfaces.QueryCache = (*QueryCache)(nil)

// Get returns the cached result for key when present and fresh.
func (c *QueryCache) Get(key string) (json.RawMessage, bool) {
	return c.inner.Get(key)
}

// Set stores a result under key.
func (c *QueryCache) Set(key string, value json.RawMessage) {
	c.inner.Set(key, value)
}
