// Package cache provides the gateway's non-authoritative response memos:
// an in-process TTL cache for assembled list responses and a
// marshal-based response cache (memory or Redis) for upstream search
// calls. None of these are correctness-bearing; every caller must work
// with a cold or absent cache.
package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

// Cache is the minimal read/write interface for the handler-level
// response cache. Implementations must be safe for concurrent use.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, v any)
}

type item struct {
	val       any
	expiresAt time.Time
}

// TTLCache is an in-memory Cache with per-entry expiry and optional NATS
// key-level invalidation.
type TTLCache struct {
	mu    sync.RWMutex
	items map[string]item
	ttl   time.Duration
}

// NewTTLCache creates a TTLCache and subscribes to subj for invalidation
// when nc is non-nil. A message body naming a key evicts that key; an
// empty body or "ALL" flushes everything.
func NewTTLCache(ttl time.Duration, nc *nats.Conn, subj string) *TTLCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	c := &TTLCache{items: make(map[string]item), ttl: ttl}
	if nc != nil && subj != "" {
		_, _ = nc.Subscribe(subj, func(m *nats.Msg) {
			key := string(m.Data)
			c.mu.Lock()
			defer c.mu.Unlock()
			if key == "" || strings.EqualFold(key, "ALL") {
				c.items = make(map[string]item)
				return
			}
			delete(c.items, key)
		})
	}
	return c
}

func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.RLock()
	it, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(it.expiresAt) {
		c.mu.Lock()
		if cur, ok2 := c.items[key]; ok2 && time.Now().After(cur.expiresAt) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return it.val, true
}

func (c *TTLCache) Set(key string, v any) {
	c.mu.Lock()
	c.items[key] = item{val: v, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

// Invalidate evicts key, or every entry when key is empty. It mirrors
// the NATS invalidation contract for in-process callers.
func (c *TTLCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if key == "" {
		c.items = make(map[string]item)
		return
	}
	delete(c.items, key)
}
