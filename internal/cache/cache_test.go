package cache

import (
	"context"
	"testing"
	"time"
)

func TestTTLCache_SetGet(t *testing.T) {
	c := NewTTLCache(time.Minute, nil, "")
	c.Set("k", "v")
	got, ok := c.Get("k")
	if !ok || got != "v" {
		t.Fatalf("expected cached value, got %v ok=%v", got, ok)
	}
}

func TestTTLCache_Miss(t *testing.T) {
	c := NewTTLCache(time.Minute, nil, "")
	if _, ok := c.Get("absent"); ok {
		t.Fatal("expected miss for absent key")
	}
}

func TestTTLCache_Expiry(t *testing.T) {
	c := NewTTLCache(time.Minute, nil, "")
	c.Set("k", "v")
	c.mu.Lock()
	it := c.items["k"]
	it.expiresAt = time.Now().Add(-time.Second)
	c.items["k"] = it
	c.mu.Unlock()

	if _, ok := c.Get("k"); ok {
		t.Fatal("expected expired entry to miss")
	}
	c.mu.RLock()
	_, still := c.items["k"]
	c.mu.RUnlock()
	if still {
		t.Fatal("expected expired entry to be evicted on read")
	}
}

func TestTTLCache_InvalidateKey(t *testing.T) {
	c := NewTTLCache(time.Minute, nil, "")
	c.Set("a", 1)
	c.Set("b", 2)
	c.Invalidate("a")
	if _, ok := c.Get("a"); ok {
		t.Fatal("expected invalidated key to miss")
	}
	if _, ok := c.Get("b"); !ok {
		t.Fatal("expected untouched key to survive")
	}
}

func TestTTLCache_InvalidateAll(t *testing.T) {
	c := NewTTLCache(time.Minute, nil, "")
	c.Set("a", 1)
	c.Set("b", 2)
	c.Invalidate("")
	if _, ok := c.Get("a"); ok {
		t.Fatal("expected flush to drop every key")
	}
	if _, ok := c.Get("b"); ok {
		t.Fatal("expected flush to drop every key")
	}
}

func TestMemoryResponseCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryResponseCache(time.Minute)
	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	if err := c.Set(ctx, "p", payload{Name: "x", Count: 3}); err != nil {
		t.Fatalf("set: %v", err)
	}
	var out payload
	ok, err := c.Get(ctx, "p", &out)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if out.Name != "x" || out.Count != 3 {
		t.Fatalf("unexpected payload: %+v", out)
	}
}

func TestMemoryResponseCache_Miss(t *testing.T) {
	c := NewMemoryResponseCache(time.Minute)
	var out map[string]any
	ok, err := c.Get(context.Background(), "absent", &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected miss for absent key")
	}
}
