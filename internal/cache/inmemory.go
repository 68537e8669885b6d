package cache

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// InMemoryCache is a thread-safe in-memory cache backed by go-cache
type InMemoryCache struct {
	cache *gocache.Cache
}

var (
	inMemoryInstance *InMemoryCache
	inMemoryOnce     sync.Once
)

// InitializeInMemoryCache initializes the in-memory cache singleton
func InitializeInMemoryCache() {
	inMemoryOnce.Do(func() {
		inMemoryInstance = &InMemoryCache{
			cache: gocache.New(ExpiryDefaultInMemory, 10*time.Minute),
		}
	})
}

// GetInMemoryCache returns the in-memory cache singleton
func GetInMemoryCache() *InMemoryCache {
	if inMemoryInstance == nil {
		InitializeInMemoryCache()
	}
	return inMemoryInstance
}

func (c *InMemoryCache) Get(ctx context.Context, key string) (interface{}, bool) {
	return c.cache.Get(key)
}

func (c *InMemoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) {
	if expiration <= 0 {
		expiration = ExpiryDefaultInMemory
	}
	c.cache.Set(key, value, expiration)
}

func (c *InMemoryCache) Delete(ctx context.Context, key string) {
	c.cache.Delete(key)
}

func (c *InMemoryCache) Flush(ctx context.Context) {
	c.cache.Flush()
}
