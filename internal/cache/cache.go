// Package cache is the best-effort amenity cache: Redis when reachable,
// an in-process map otherwise. A miss never fails a caller, it only
// costs a repeated upstream call.
package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultTTL = time.Hour

type mode int

const (
	modeMemory mode = iota
	modeRedis
)

type entry struct {
	expiresAt time.Time
	data      []byte
}

type Cache struct {
	mode mode
	rdb  *redis.Client

	mu  sync.Mutex
	mem map[string]entry
}

// New decides the backend once, at startup. An empty URL, a bad URL or
// an unreachable Redis all fall back to the in-process map for the life
// of the process; the connection is never re-attempted.
func New(ctx context.Context, redisURL string) *Cache {
	c := &Cache{mode: modeMemory, mem: make(map[string]entry)}
	if redisURL == "" {
		return c
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("[WARN] invalid REDIS_URL, using memory cache: %v", err)
		return c
	}
	rdb := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Printf("[WARN] redis unreachable, using memory cache: %v", err)
		_ = rdb.Close()
		return c
	}
	c.mode = modeRedis
	c.rdb = rdb
	return c
}

func (c *Cache) UsingRedis() bool { return c.mode == modeRedis }

// Get unmarshals the cached value into dest and reports whether it was
// found. The memory path checks expiry itself; Redis expires natively.
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if c.mode == modeRedis {
		data, err := c.rdb.Get(ctx, key).Result()
		if err == redis.Nil {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return true, json.Unmarshal([]byte(data), dest)
	}

	c.mu.Lock()
	it, ok := c.mem[key]
	if ok && time.Now().After(it.expiresAt) {
		delete(c.mem, key)
		ok = false
	}
	c.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(it.data, dest)
}

func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if c.mode == modeRedis {
		return c.rdb.Set(ctx, key, data, ttl).Err()
	}
	c.mu.Lock()
	c.mem[key] = entry{expiresAt: time.Now().Add(ttl), data: data}
	c.mu.Unlock()
	return nil
}

// Key builds a stable cache key: md5 over the sorted k=v pairs, so
// parameter order never splits entries.
func Key(prefix string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString(":")
		}
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(params[k])
	}
	sum := md5.Sum([]byte(b.String()))
	return prefix + ":" + hex.EncodeToString(sum[:])
}
