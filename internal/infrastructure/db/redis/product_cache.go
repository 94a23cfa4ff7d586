package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/storefront/catalog-api/internal/core/domain"
)

const (
	DefaultProductTTL = 5 * time.Minute
	versionMinTTL     = time.Hour
)

// ProductCache implements ports.ProductCache on Redis.
// Keys: product:<id> holds the JSON document, product:<id>:version the
// invalidation generation.
type ProductCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewProductCache wraps client. A non-positive ttl falls back to DefaultProductTTL.
func NewProductCache(client redis.Cmdable, ttl time.Duration) *ProductCache {
	if ttl <= 0 {
		ttl = DefaultProductTTL
	}
	return &ProductCache{client: client, ttl: ttl}
}

// Get returns (nil, nil) on a miss.
func (c *ProductCache) Get(ctx context.Context, id string) (*domain.Product, error) {
	raw, err := c.client.Get(ctx, productKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("product cache get: %w", err)
	}

	var p domain.Product
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("product cache decode: %w", err)
	}
	return &p, nil
}

// Version returns the invalidation generation for id, zero when none exists.
func (c *ProductCache) Version(ctx context.Context, id string) (int64, error) {
	v, err := c.client.Get(ctx, versionKey(id)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("product cache version: %w", err)
	}
	return v, nil
}

// fillIfVersion writes KEYS[1] only while KEYS[2] still holds ARGV[2].
var fillIfVersion = redis.NewScript(`
local current = redis.call("GET", KEYS[2])
if not current then current = "0" end
if current ~= ARGV[2] then return 0 end
redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[3])
return 1
`)

// SetIfVersion caches p unless Delete ran for p.ID since version was read.
func (c *ProductCache) SetIfVersion(ctx context.Context, p *domain.Product, version int64) (bool, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return false, fmt.Errorf("product cache encode: %w", err)
	}
	stored, err := fillIfVersion.Run(ctx, c.client,
		[]string{productKey(p.ID), versionKey(p.ID)},
		raw, strconv.FormatInt(version, 10), c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("product cache set: %w", err)
	}
	return stored == 1, nil
}

// Delete drops the cached entry and advances the generation. The generation
// outlives the entry so slow readers still see the bump.
func (c *ProductCache) Delete(ctx context.Context, id string) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, productKey(id))
		pipe.Incr(ctx, versionKey(id))
		pipe.Expire(ctx, versionKey(id), c.versionTTL())
		return nil
	})
	if err != nil {
		return fmt.Errorf("product cache delete: %w", err)
	}
	return nil
}

func (c *ProductCache) versionTTL() time.Duration {
	if ttl := 2 * c.ttl; ttl > versionMinTTL {
		return ttl
	}
	return versionMinTTL
}

func productKey(id string) string {
	return "product:" + id
}

func versionKey(id string) string {
	return "product:" + id + ":version"
}
