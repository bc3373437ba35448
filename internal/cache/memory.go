package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// MemoryResponseCache is the in-process counterpart of
// RedisResponseCache: values round-trip through JSON so Get/Set behave
// identically to the Redis implementation.
type MemoryResponseCache struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	ttl   time.Duration
}

type memoryItem struct {
	data      []byte
	expiresAt time.Time
}

func NewMemoryResponseCache(ttl time.Duration) *MemoryResponseCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &MemoryResponseCache{items: make(map[string]memoryItem), ttl: ttl}
}

func (c *MemoryResponseCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.RLock()
	it, ok := c.items[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(it.expiresAt) {
		return false, nil
	}
	if err := json.Unmarshal(it.data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *MemoryResponseCache) Set(_ context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.items[key] = memoryItem{data: b, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
	return nil
}
