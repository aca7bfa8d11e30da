package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"goflare.io/cart/models"
)

var ErrCacheMiss = errors.New("catalog: cache miss")

const defaultCacheTTL = 30 * time.Minute

type Cache interface {
	Get(ctx context.Context, productID string) (*models.Product, error)
	Set(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, productID string) error
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) Cache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &redisCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func cacheKey(productID string) string {
	return fmt.Sprintf("catalog:product:%s", productID)
}

func (c *redisCache) Get(ctx context.Context, productID string) (*models.Product, error) {
	data, err := c.client.Get(ctx, cacheKey(productID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	var product models.Product
	if err := json.Unmarshal(data, &product); err != nil {
		// A corrupt entry is as good as a miss; drop it.
		c.logger.Warn("Dropping corrupt cache entry", zap.String("product_id", productID), zap.Error(err))
		if delErr := c.client.Del(ctx, cacheKey(productID)).Err(); delErr != nil {
			c.logger.Warn("Failed to drop corrupt cache entry", zap.Error(delErr))
		}
		return nil, ErrCacheMiss
	}

	return &product, nil
}

func (c *redisCache) Set(ctx context.Context, product *models.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(product.ID), data, c.ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, productID string) error {
	return c.client.Del(ctx, cacheKey(productID)).Err()
}
