package cache

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"restaurant.GO/config"
)

// Cache is a simple thread-safe key-value store using sync.Map.
// When Redis is configured it doubles as a write-through second tier,
// so restarts (and sibling processes) keep warm entries. Values going
// through Redis round-trip JSON, which suits the list/stats payloads
// cached here.
type Cache struct {
	m sync.Map
}

var (
	once     sync.Once
	instance *Cache
)

func GetInstance() *Cache {
	once.Do(func() {
		instance = NewCache()
	})
	return instance
}

// NewCache creates a new Cache instance.
func NewCache() *Cache {
	return &Cache{}
}

// cacheItem holds a value and its expiration time.
type cacheItem struct {
	Value     interface{}
	ExpiresAt int64 // Unix timestamp in nanoseconds; 0 means no expiration
}

// Set stores a value for a key with an optional TTL (in seconds).
// If ttl is 0, the value does not expire.
func (c *Cache) Set(key, value interface{}, ttl int64) {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = time.Now().Add(time.Duration(ttl) * time.Second).UnixNano()
	}
	c.m.Store(key, cacheItem{Value: value, ExpiresAt: expiresAt})

	if config.RedisClient != nil {
		if data, err := json.Marshal(value); err == nil {
			config.RedisClient.Set(config.RedisCtx(), redisKey(key), data,
				time.Duration(ttl)*time.Second)
		}
	}
}

// Get retrieves a value for a key. Returns (value, true) if found and
// not expired, (nil, false) otherwise. A local miss falls through to
// Redis when configured.
func (c *Cache) Get(key interface{}) (interface{}, bool) {
	v, ok := c.m.Load(key)
	if !ok {
		return c.getRedis(key)
	}
	item, isItem := v.(cacheItem)
	if !isItem {
		return v, true
	}
	if item.ExpiresAt > 0 && time.Now().UnixNano() > item.ExpiresAt {
		c.m.Delete(key)
		return c.getRedis(key)
	}
	return item.Value, true
}

func (c *Cache) getRedis(key interface{}) (interface{}, bool) {
	if config.RedisClient == nil {
		return nil, false
	}
	data, err := config.RedisClient.Get(config.RedisCtx(), redisKey(key)).Bytes()
	if err != nil {
		return nil, false
	}
	var out interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, false
	}
	return out, true
}

// Delete removes a key from the cache.
func (c *Cache) Delete(key interface{}) {
	c.m.Delete(key)
	if config.RedisClient != nil {
		config.RedisClient.Del(config.RedisCtx(), redisKey(key))
	}
}

func redisKey(key interface{}) string {
	return fmt.Sprintf("cache:%v", key)
}

// Flush removes all local keys. Redis entries are left to their TTLs.
func (c *Cache) Flush() {
	c.m.Range(func(k, _ interface{}) bool {
		c.m.Delete(k)
		return true
	})
}
