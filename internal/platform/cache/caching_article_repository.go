// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"kanairy_backend/internal/feature/news/domain/entity"
	"kanairy_backend/internal/feature/news/usecase"
)

// CachingArticleRepository decorates an ArticleRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository.
type CachingArticleRepository struct {
	inner     usecase.ArticleRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingArticleRepository decorates an ArticleRepository with Redis
// caching. If ttl is 0, it defaults to 5 minutes. If namespace is empty, it
// uses "news".
func NewCachingArticleRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ArticleRepository, namespace string) *CachingArticleRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "news"
	}
	return &CachingArticleRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create stores an article and invalidates the cached feed.
func (c *CachingArticleRepository) Create(ctx context.Context, a *entity.Article) error {
	if err := c.inner.Create(ctx, a); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}
	// Best effort: don't fail the write if cache invalidation fails
	_ = c.deleteByPattern(ctx, c.namespace+":*")
	return nil
}

// List retrieves articles, checking cache first then falling back to the
// underlying store.
func (c *CachingArticleRepository) List(ctx context.Context, category string, limit int) ([]entity.Article, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.List(ctx, category, limit)
	}

	key := c.cacheKey(category, limit)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Article
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the store
	out, err := c.inner.List(ctx, category, limit)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort); empty feeds are not cached so the
	// sample seeding can still kick in on the next request
	if len(out) > 0 {
		if b, err := json.Marshal(out); err == nil {
			_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
		}
	}

	return out, nil
}

// cacheKey generates a cache key for a specific query.
func (c *CachingArticleRepository) cacheKey(category string, limit int) string {
	if category == "" {
		category = "all"
	}
	return fmt.Sprintf("%s:%s:%d", c.namespace, safe(category), limit)
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingArticleRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
