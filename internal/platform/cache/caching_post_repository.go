// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"blog_backend/internal/feature/posts/domain/entity"
	"blog_backend/internal/feature/posts/usecase"
)

// CachingPostRepository decorates a PostRepository with Redis caching of slug lookups.
// Listing and ID lookups always go to the inner repository.
type CachingPostRepository struct {
	inner     usecase.PostRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.PostRepository = (*CachingPostRepository)(nil)

// NewCachingPostRepository decorates a PostRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "posts".
func NewCachingPostRepository(rdb *redis.Client, ttl time.Duration, inner usecase.PostRepository, namespace string) *CachingPostRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "posts"
	}
	return &CachingPostRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create stores the post. A new slug cannot be cached yet, so nothing is invalidated.
func (c *CachingPostRepository) Create(ctx context.Context, post *entity.Post) error {
	return c.inner.Create(ctx, post)
}

// FindByID is not cached.
func (c *CachingPostRepository) FindByID(ctx context.Context, id uint) (*entity.Post, error) {
	return c.inner.FindByID(ctx, id)
}

// FindBySlug retrieves a post, checking cache first then falling back to the database.
// Misses are not cached.
func (c *CachingPostRepository) FindBySlug(ctx context.Context, slug string) (*entity.Post, error) {
	if c.rdb == nil {
		return c.inner.FindBySlug(ctx, slug)
	}

	k := c.slugKey(slug)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, k).Bytes(); err == nil && len(b) > 0 {
		var out entity.Post
		if err := json.Unmarshal(b, &out); err == nil && out.Slug == slug {
			return &out, nil
		}
		// Delete corrupted or mismatched cache entry
		_ = c.rdb.Del(ctx, k).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, k, b, c.ttl).Err()
	}

	return out, nil
}

// Find is not cached.
func (c *CachingPostRepository) Find(ctx context.Context, f usecase.PostFilter, page usecase.Page) ([]entity.Post, error) {
	return c.inner.Find(ctx, f, page)
}

// Count is not cached.
func (c *CachingPostRepository) Count(ctx context.Context, f usecase.PostFilter) (int64, error) {
	return c.inner.Count(ctx, f)
}

// Save updates the post and invalidates both its previous and its current slug.
func (c *CachingPostRepository) Save(ctx context.Context, post *entity.Post) error {
	var oldSlug string
	if c.rdb != nil {
		if prev, err := c.inner.FindByID(ctx, post.ID); err == nil {
			oldSlug = prev.Slug
		}
	}

	if err := c.inner.Save(ctx, post); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}

	keys := []string{c.slugKey(post.Slug)}
	if oldSlug != "" && oldSlug != post.Slug {
		keys = append(keys, c.slugKey(oldSlug))
	}
	_ = c.rdb.Del(ctx, keys...).Err() // Best effort: don't fail if cache deletion fails
	return nil
}

// SoftDelete deletes the post and invalidates its slug.
func (c *CachingPostRepository) SoftDelete(ctx context.Context, post *entity.Post) error {
	if err := c.inner.SoftDelete(ctx, post); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}
	_ = c.rdb.Del(ctx, c.slugKey(post.Slug)).Err()
	return nil
}

// slugKey generates the cache key for a slug lookup.
func (c *CachingPostRepository) slugKey(slug string) string {
	return key(c.namespace, "slug", slug)
}
