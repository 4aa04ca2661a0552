package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	studioapp "github.com/teeforge/backend/internal/application/studio"
	"go.uber.org/zap"
)

var _ studioapp.AssetCatalog = (*CachedCatalog)(nil)

// CachedCatalog wraps an AssetCatalog with a Redis read-through cache.
// Cache failures fall through to the upstream catalog; a broken cache
// must never break the editor.
type CachedCatalog struct {
	upstream studioapp.AssetCatalog
	redis    *redis.Client
	ttl      time.Duration
	logger   *zap.Logger
}

// NewCachedCatalog creates a caching decorator over the given catalog
func NewCachedCatalog(upstream studioapp.AssetCatalog, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedCatalog {
	return &CachedCatalog{
		upstream: upstream,
		redis:    client,
		ttl:      ttl,
		logger:   logger,
	}
}

// Swatches returns cached swatches, refreshing from upstream on a miss
func (c *CachedCatalog) Swatches(ctx context.Context) ([]studioapp.ColorSwatch, error) {
	const key = "catalog:swatches"

	if data, err := c.redis.Get(ctx, key).Bytes(); err == nil {
		var swatches []studioapp.ColorSwatch
		if err := json.Unmarshal(data, &swatches); err == nil {
			return swatches, nil
		}
		// Corrupt cache entry, drop it and refetch.
		c.redis.Del(ctx, key)
	}

	swatches, err := c.upstream.Swatches(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, swatches)
	return swatches, nil
}

// Logos returns a cached logo page, refreshing from upstream on a miss
func (c *CachedCatalog) Logos(ctx context.Context, page, pageSize int) (studioapp.LogoPage, error) {
	key := fmt.Sprintf("catalog:logos:%d:%d", page, pageSize)

	if data, err := c.redis.Get(ctx, key).Bytes(); err == nil {
		var result studioapp.LogoPage
		if err := json.Unmarshal(data, &result); err == nil {
			return result, nil
		}
		c.redis.Del(ctx, key)
	}

	result, err := c.upstream.Logos(ctx, page, pageSize)
	if err != nil {
		return studioapp.LogoPage{}, err
	}
	c.store(ctx, key, result)
	return result, nil
}

func (c *CachedCatalog) store(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Debug("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}
