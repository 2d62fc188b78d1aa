package draft

import (
	"context"
	"sync"

	"onboard/pkg/sentinel"
)

// MemoryCache is the in-process draft cache for development and tests.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]Entry)}
}

func (c *MemoryCache) Put(_ context.Context, token, email string, entry Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(token, email)] = entry
	return nil
}

func (c *MemoryCache) Get(_ context.Context, token, email string) (Entry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[cacheKey(token, email)]
	if !ok {
		return Entry{}, sentinel.ErrNotFound
	}
	return entry, nil
}

func (c *MemoryCache) Delete(_ context.Context, token, email string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, cacheKey(token, email))
	return nil
}

func cacheKey(token, email string) string {
	return "draft:" + token + ":" + email
}
