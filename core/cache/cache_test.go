package cache

import (
	"testing"
	"time"
)

func TestCache_SetGet(t *testing.T) {
	c := NewCache()
	c.Set("k", "v", 0)
	v, ok := c.Get("k")
	if !ok || v != "v" {
		t.Fatalf("Get = %v, %v; want v, true", v, ok)
	}
}

func TestCache_TTLExpiry(t *testing.T) {
	c := NewCache()
	c.Set("k", "v", 1)
	c.m.Store("k", cacheItem{Value: "v", ExpiresAt: time.Now().Add(-time.Second).UnixNano()})
	if _, ok := c.Get("k"); ok {
		t.Fatal("expired key still readable")
	}
}

func TestCache_DeleteAndFlush(t *testing.T) {
	c := NewCache()
	c.Set("a", 1, 0)
	c.Set("b", 2, 0)
	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Fatal("deleted key still readable")
	}
	c.Flush()
	if _, ok := c.Get("b"); ok {
		t.Fatal("flushed key still readable")
	}
}
