package caching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mandic19/Shop/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "shop"

// RateLimitResult is the state of one fixed-window counter after a hit.
type RateLimitResult struct {
	Limited    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

type CacheService interface {
	// Catalog caching
	GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error)
	SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
	GetVariant(ctx context.Context, variantID uuid.UUID) (*models.Variant, error)
	SetVariant(ctx context.Context, variant *models.Variant, ttl time.Duration) error
	DeleteVariant(ctx context.Context, variantID uuid.UUID) error
	InvalidateCatalog(ctx context.Context) error

	// Rate limiting
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (*RateLimitResult, error)

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis://host:port as well as host:port
	parsedAddr := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		slog.Warn("redis ping failed on initialization", "addr", parsedAddr, "error", pingErr)
	} else {
		slog.Debug("redis connection established", "addr", parsedAddr)
	}

	return NewCacheServiceFromClient(client)
}

func NewCacheServiceFromClient(client *redis.Client) CacheService {
	return &redisCacheService{client: client}
}

func productKey(id uuid.UUID) string {
	return fmt.Sprintf("%s:product:%s", keyPrefix, id.String())
}

func variantKey(id uuid.UUID) string {
	return fmt.Sprintf("%s:variant:%s", keyPrefix, id.String())
}

// getJSON decodes a cached value into dst; a miss reports false and no error.
func (r *redisCacheService) getJSON(ctx context.Context, key string, dst any) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (r *redisCacheService) setJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	found, err := r.getJSON(ctx, productKey(productID), &product)
	if err != nil || !found {
		return nil, err
	}
	return &product, nil
}

func (r *redisCacheService) SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error {
	return r.setJSON(ctx, productKey(product.ID), product, ttl)
}

func (r *redisCacheService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	return r.client.Del(ctx, productKey(productID)).Err()
}

func (r *redisCacheService) GetVariant(ctx context.Context, variantID uuid.UUID) (*models.Variant, error) {
	var variant models.Variant
	found, err := r.getJSON(ctx, variantKey(variantID), &variant)
	if err != nil || !found {
		return nil, err
	}
	return &variant, nil
}

func (r *redisCacheService) SetVariant(ctx context.Context, variant *models.Variant, ttl time.Duration) error {
	return r.setJSON(ctx, variantKey(variant.ID), variant, ttl)
}

func (r *redisCacheService) DeleteVariant(ctx context.Context, variantID uuid.UUID) error {
	return r.client.Del(ctx, variantKey(variantID)).Err()
}

// InvalidateCatalog drops every cached product and variant.
func (r *redisCacheService) InvalidateCatalog(ctx context.Context) error {
	for _, pattern := range []string{keyPrefix + ":product:*", keyPrefix + ":variant:*"} {
		iter := r.client.Scan(ctx, 0, pattern, 100).Iterator()
		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *redisCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (*RateLimitResult, error) {
	cacheKey := fmt.Sprintf("%s:ratelimit:%s", keyPrefix, key)
	count, err := r.client.Incr(ctx, cacheKey).Result()
	if err != nil {
		return nil, err
	}

	// Start the window on the first hit
	if count == 1 {
		if err := r.client.Expire(ctx, cacheKey, window).Err(); err != nil {
			return nil, err
		}
	}

	ttl, err := r.client.TTL(ctx, cacheKey).Result()
	if err != nil {
		return nil, err
	}
	if ttl < 0 {
		// Counter lost its expiry; restart the window
		r.client.Expire(ctx, cacheKey, window)
		ttl = window
	}

	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return &RateLimitResult{
		Limited:    count > int64(limit),
		Limit:      limit,
		Remaining:  remaining,
		RetryAfter: ttl,
	}, nil
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
