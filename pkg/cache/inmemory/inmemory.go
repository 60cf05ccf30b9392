package inmemory

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/fortuneworks/fortune/pkg/cache"
)

// Config controls expiration behavior. Both values are in seconds; zero
// means entries never expire and no cleanup goroutine runs, which is what
// the fortune contract wants (the external layer never drops entries on
// its own).
type Config struct {
	DefaultExpiration int
	CleanupInterval   int
}

// Cache is an in-process cache.Cache used in tests and anywhere a Cache is
// needed without a redis deployment behind it.
type Cache struct {
	c *gocache.Cache
}

var _ cache.Cache = (*Cache)(nil)

// NewCache creates an in-memory cache from the given config.
func NewCache(cfg *Config) (*Cache, error) {
	defaultExpiration := gocache.NoExpiration
	cleanupInterval := time.Duration(0)
	if cfg != nil {
		if cfg.DefaultExpiration > 0 {
			defaultExpiration = time.Duration(cfg.DefaultExpiration) * time.Second
		}
		if cfg.CleanupInterval > 0 {
			cleanupInterval = time.Duration(cfg.CleanupInterval) * time.Second
		}
	}
	return &Cache{c: gocache.New(defaultExpiration, cleanupInterval)}, nil
}

func (m *Cache) Get(_ context.Context, id string) (string, error) {
	val, found := m.c.Get(id)
	if !found {
		return "", cache.ErrCacheMiss
	}
	return val.(string), nil
}

func (m *Cache) Set(_ context.Context, id, message string) error {
	m.c.Set(id, message, gocache.DefaultExpiration)
	return nil
}

func (m *Cache) ListAll(_ context.Context) (map[string]string, error) {
	items := m.c.Items()
	entries := make(map[string]string, len(items))
	for id, item := range items {
		entries[id] = item.Object.(string)
	}
	return entries, nil
}
