package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/armonia/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultFeatureAccessTTL bounds how stale a cached plan-feature decision may be
const DefaultFeatureAccessTTL = 5 * time.Minute

// FeatureAccessCache caches per-complex feature access decisions so the
// plan gate does not hit the database on every request.
type FeatureAccessCache interface {
	// Get returns the cached decision and whether one was present
	Get(ctx context.Context, tenantID uuid.UUID, featureKey string) (enabled bool, found bool)

	// Set stores a decision
	Set(ctx context.Context, tenantID uuid.UUID, featureKey string, enabled bool)

	// InvalidateTenant drops all cached decisions for a complex, used
	// after a plan change
	InvalidateTenant(ctx context.Context, tenantID uuid.UUID) error
}

// RedisFeatureAccessCache implements FeatureAccessCache on Redis
type RedisFeatureAccessCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisFeatureAccessCache connects to Redis and returns a cache
func NewRedisFeatureAccessCache(cfg config.RedisConfig, ttl time.Duration, logger *zap.Logger) (*RedisFeatureAccessCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if ttl == 0 {
		ttl = DefaultFeatureAccessTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &RedisFeatureAccessCache{client: client, ttl: ttl, logger: logger}, nil
}

func featureAccessKey(tenantID uuid.UUID, featureKey string) string {
	return fmt.Sprintf("feature_access:%s:%s", tenantID, featureKey)
}

// Get returns the cached decision and whether one was present
func (c *RedisFeatureAccessCache) Get(ctx context.Context, tenantID uuid.UUID, featureKey string) (bool, bool) {
	val, err := c.client.Get(ctx, featureAccessKey(tenantID, featureKey)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("feature access cache read failed", zap.Error(err))
		}
		return false, false
	}
	return val == "1", true
}

// Set stores a decision. Cache write failures are logged, not surfaced:
// the gate falls back to the repository.
func (c *RedisFeatureAccessCache) Set(ctx context.Context, tenantID uuid.UUID, featureKey string, enabled bool) {
	val := "0"
	if enabled {
		val = "1"
	}
	if err := c.client.Set(ctx, featureAccessKey(tenantID, featureKey), val, c.ttl).Err(); err != nil {
		c.logger.Warn("feature access cache write failed", zap.Error(err))
	}
}

// InvalidateTenant drops all cached decisions for a complex
func (c *RedisFeatureAccessCache) InvalidateTenant(ctx context.Context, tenantID uuid.UUID) error {
	pattern := fmt.Sprintf("feature_access:%s:*", tenantID)
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan feature access keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Close releases the Redis connection
func (c *RedisFeatureAccessCache) Close() error {
	return c.client.Close()
}
