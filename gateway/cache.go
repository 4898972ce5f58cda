package gateway

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// Cache stores gateway responses by key.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
}

// CacheKey hashes the parts of a request into a stable key.
func CacheKey(kind string, parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("wayfarer:gateway:%s:%x", kind, h.Sum(nil))
}

// MemoryCache keeps responses in process.
type MemoryCache struct {
	items *gocache.Cache
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{items: gocache.New(time.Hour, 10*time.Minute)}
}

func (c *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	v, ok := c.items.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (c *MemoryCache) Set(_ context.Context, key, value string, ttl time.Duration) {
	c.items.Set(key, value, ttl)
}

// RedisCache shares responses between instances.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to the redis URL and verifies it with a ping.
func NewRedisCache(ctx context.Context, redisURL string) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	slog.Info("redis gateway cache connected", "addr", opts.Addr)
	return &RedisCache{client: client}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	v, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("redis cache get failed", "error", err)
		}
		return "", false
	}
	return v, true
}

func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		slog.Warn("redis cache set failed", "error", err)
	}
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (g *Gateway) cached(ctx context.Context, key string) (string, bool) {
	if g.cache == nil {
		return "", false
	}
	return g.cache.Get(ctx, key)
}

func (g *Gateway) store(ctx context.Context, key, value string, ttl time.Duration) {
	if g.cache == nil {
		return
	}
	g.cache.Set(ctx, key, value, ttl)
}

func (g *Gateway) cachedJSON(ctx context.Context, key string, dest any) bool {
	raw, ok := g.cached(ctx, key)
	if !ok {
		return false
	}
	return json.Unmarshal([]byte(raw), dest) == nil
}

func (g *Gateway) storeJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	g.store(ctx, key, string(raw), ttl)
}
