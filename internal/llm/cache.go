package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultCacheTTL is how long a generated answer is reused.
const DefaultCacheTTL = 24 * time.Hour

// Cache stores generated answers by key.
type Cache interface {
	// Get returns the cached value and whether it was found.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// RedisCache is a Cache backed by Redis.
type RedisCache struct {
	cmd    redis.Cmdable
	prefix string
}

// NewRedisCache stores values under prefix in cmd.
func NewRedisCache(cmd redis.Cmdable, prefix string) *RedisCache {
	return &RedisCache{cmd: cmd, prefix: prefix}
}

// NewRedisCacheFromURL connects to a redis:// URL.
func NewRedisCacheFromURL(ctx context.Context, url, prefix string) (*RedisCache, *redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	return NewRedisCache(client, prefix), client, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.cmd.Get(ctx, c.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.cmd.Set(ctx, c.prefix+key, value, ttl).Err()
}

// CachedClient reuses answers for identical prompts. Cache failures are
// logged and the call goes to the provider.
type CachedClient struct {
	next   Client
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedClient wraps next with cache. A non-positive ttl uses DefaultCacheTTL.
func NewCachedClient(next Client, cache Cache, ttl time.Duration, logger *slog.Logger) *CachedClient {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedClient{next: next, cache: cache, ttl: ttl, logger: logger}
}

func (c *CachedClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.cached(ctx, "text", prompt, tier, c.next.GenerateContent)
}

func (c *CachedClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.cached(ctx, "json", prompt, tier, c.next.GenerateJSON)
}

func (c *CachedClient) GetModel(tier ModelTier) string {
	return c.next.GetModel(tier)
}

func (c *CachedClient) Close() error {
	return c.next.Close()
}

type generateFunc func(ctx context.Context, prompt string, tier ModelTier) (string, error)

func (c *CachedClient) cached(ctx context.Context, kind, prompt string, tier ModelTier, gen generateFunc) (string, error) {
	key := CacheKey(kind, c.next.GetModel(tier), prompt)

	val, ok, err := c.cache.Get(ctx, key)
	switch {
	case err != nil:
		c.logger.Warn("llm cache read failed", slog.String("error", err.Error()))
	case ok:
		c.logger.Debug("llm cache hit", slog.String("model", c.next.GetModel(tier)))
		return val, nil
	}

	out, err := gen(ctx, prompt, tier)
	if err != nil {
		return "", err
	}
	if err := c.cache.Set(ctx, key, out, c.ttl); err != nil {
		c.logger.Warn("llm cache write failed", slog.String("error", err.Error()))
	}
	return out, nil
}

// CacheKey derives the cache key for one generation request.
func CacheKey(kind, model, prompt string) string {
	h := sha256.New()
	h.Write([]byte(kind))
	h.Write([]byte{0})
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write([]byte(prompt))
	return hex.EncodeToString(h.Sum(nil))
}
