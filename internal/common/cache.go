package common

import (
	"time"

	"github.com/patrickmn/go-cache"
)

type Cache struct {
	*cache.Cache
}

func NewCache(expirationTime, cleanupTime time.Duration) *Cache {
	return &Cache{cache.New(expirationTime, cleanupTime)}
}

// GetOrSet returns the cached value for key, storing the result of create
// when the key is missing or expired. Every read pushes the expiry forward.
func (c *Cache) GetOrSet(key string, create func() interface{}) interface{} {
	if v, ok := c.Cache.Get(key); ok {
		c.Cache.Set(key, v, cache.DefaultExpiration)
		return v
	}

	v := create()
	if err := c.Cache.Add(key, v, cache.DefaultExpiration); err != nil {
		// lost the race against another request for the same key
		if existing, ok := c.Cache.Get(key); ok {
			return existing
		}
		c.Cache.Set(key, v, cache.DefaultExpiration)
	}

	return v
}

func CacheKeyClient(ip string) string {
	return "client:" + ip
}
