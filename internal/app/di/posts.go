// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	postadapters "blog_backend/internal/feature/posts/adapters"
	"blog_backend/internal/feature/posts/usecase"
	"blog_backend/internal/platform/cache"
)

// NewPostRepository creates a PostRepository implementation.
// If Redis is available, slug lookups are cached in front of the gorm store.
// Otherwise, the gorm store is used directly.
func NewPostRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) usecase.PostRepository {
	store := postadapters.NewPostRepository(db)
	if rdb != nil {
		return cache.NewCachingPostRepository(rdb, ttl, store, "posts")
	}
	return store
}
