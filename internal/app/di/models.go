package di

import (
	"gorm.io/gorm"

	"blog_backend/internal/feature/auth/domain/entity"
	postadapters "blog_backend/internal/feature/posts/adapters"
	"blog_backend/internal/platform/db"
)

// Models lists every gorm model owned by the features, in dependency order.
func Models() []any {
	return []any{
		&entity.User{},
		&postadapters.PostModel{},
		&postadapters.PostTagModel{},
	}
}

// Migrate creates or updates the users, posts and post_tags tables.
func Migrate(gdb *gorm.DB) error {
	return db.Migrate(gdb, Models()...)
}
