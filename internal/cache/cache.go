package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/giftgrug/giftgrug/pkg/models"
	"github.com/redis/go-redis/v9"
)

// Cache provides caching functionality using Redis
type Cache struct {
	client *redis.Client
}

// NewCache creates a new cache instance
func NewCache(host string, port int, password string, db int) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Cache{client: client}, nil
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	return c.client.Close()
}

// Product list cache

// SetProducts caches a named product listing
func (c *Cache) SetProducts(ctx context.Context, listKey string, products []*models.Product, ttl time.Duration) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to marshal products: %w", err)
	}

	key := fmt.Sprintf("products:%s", listKey)
	return c.client.Set(ctx, key, data, ttl).Err()
}

// GetProducts retrieves a named product listing from cache
func (c *Cache) GetProducts(ctx context.Context, listKey string) ([]*models.Product, error) {
	key := fmt.Sprintf("products:%s", listKey)
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get products from cache: %w", err)
	}

	var products []*models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to unmarshal products: %w", err)
	}

	return products, nil
}

// InvalidateProducts drops every cached product listing. Called after admin
// writes so stale listings never outlive an edit.
func (c *Cache) InvalidateProducts(ctx context.Context) error {
	return c.deletePattern(ctx, "products:*")
}

// Scribble cache

// SetScribble caches a scribble by slug
func (c *Cache) SetScribble(ctx context.Context, scribble *models.Scribble, ttl time.Duration) error {
	data, err := json.Marshal(scribble)
	if err != nil {
		return fmt.Errorf("failed to marshal scribble: %w", err)
	}

	key := fmt.Sprintf("scribble:%s", scribble.Slug)
	return c.client.Set(ctx, key, data, ttl).Err()
}

// GetScribble retrieves a scribble by slug from cache
func (c *Cache) GetScribble(ctx context.Context, slug string) (*models.Scribble, error) {
	key := fmt.Sprintf("scribble:%s", slug)
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get scribble from cache: %w", err)
	}

	var scribble models.Scribble
	if err := json.Unmarshal(data, &scribble); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scribble: %w", err)
	}

	return &scribble, nil
}

// InvalidateScribbles drops every cached scribble
func (c *Cache) InvalidateScribbles(ctx context.Context) error {
	return c.deletePattern(ctx, "scribble:*")
}

// Usage snapshot cache

// SetUsageStatus caches an advisory usage snapshot for an identifier
func (c *Cache) SetUsageStatus(ctx context.Context, identifier string, status *models.UsageStatus, ttl time.Duration) error {
	data, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("failed to marshal usage status: %w", err)
	}

	key := fmt.Sprintf("usage:%s", identifier)
	return c.client.Set(ctx, key, data, ttl).Err()
}

// GetUsageStatus retrieves a cached usage snapshot
func (c *Cache) GetUsageStatus(ctx context.Context, identifier string) (*models.UsageStatus, error) {
	key := fmt.Sprintf("usage:%s", identifier)
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get usage status from cache: %w", err)
	}

	var status models.UsageStatus
	if err := json.Unmarshal(data, &status); err != nil {
		return nil, fmt.Errorf("failed to unmarshal usage status: %w", err)
	}

	return &status, nil
}

// InvalidateUsageStatus drops the cached snapshot after an increment
func (c *Cache) InvalidateUsageStatus(ctx context.Context, identifier string) error {
	key := fmt.Sprintf("usage:%s", identifier)
	return c.client.Del(ctx, key).Err()
}

// deletePattern deletes all keys matching a pattern
func (c *Cache) deletePattern(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete key %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

// Exists checks if a key exists
func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	result, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return result > 0, nil
}

// Ping checks cache health
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
