package cache

import (
	"context"
	"encoding/json"
	"time"

	"wholesale-be/internal/config"
	"wholesale-be/internal/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Facet vocabularies change only on import, so they can sit in Redis for a
// while. The importer drops these keys after every run.
const (
	KeyCategories    = "facets:categories"
	KeySubcategories = "facets:subcategories"
	KeyBrands        = "facets:brands"

	FacetTTL = 10 * time.Minute
)

// Cache is a thin JSON read-through layer over Redis. A nil *Cache is valid
// and behaves as a permanent miss, so the server runs fine without Redis.
type Cache struct {
	client *redis.Client
}

func New(cfg *config.Config) *Cache {
	if cfg.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.L().Warn("redis unreachable, caching disabled", zap.Error(err))
		return nil
	}

	logger.L().Info("redis connected", zap.String("addr", cfg.RedisAddr))
	return &Cache{client: client}
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

// GetJSON unmarshals the cached value into dest. Returns false on a miss or
// any Redis error; callers always fall back to the database.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		logger.FromCtx(ctx).Warn("cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		logger.FromCtx(ctx).Warn("cache entry corrupt, dropping", zap.String("key", key), zap.Error(err))
		c.client.Del(ctx, key)
		return false
	}

	return true
}

// SetJSON stores value under key. Failures are logged, never surfaced.
func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		logger.FromCtx(ctx).Warn("cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		logger.FromCtx(ctx).Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// InvalidateFacets drops the facet vocabulary keys after an import.
func (c *Cache) InvalidateFacets(ctx context.Context) {
	if c == nil {
		return
	}

	if err := c.client.Del(ctx, KeyCategories, KeySubcategories, KeyBrands).Err(); err != nil {
		logger.FromCtx(ctx).Warn("cache invalidation failed", zap.Error(err))
	}
}
