package di

import (
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"blog_backend/internal/platform/cache"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	return db
}

func TestNewPostRepository(t *testing.T) {
	db := openTestDB(t)

	t.Run("without redis uses the store directly", func(t *testing.T) {
		repo := NewPostRepository(nil, db, time.Minute)
		_, cached := repo.(*cache.CachingPostRepository)
		assert.False(t, cached)
	})

	t.Run("with redis wraps the store in the cache", func(t *testing.T) {
		rdb, _ := redismock.NewClientMock()
		defer func() { _ = rdb.Close() }()

		repo := NewPostRepository(rdb, db, time.Minute)
		_, cached := repo.(*cache.CachingPostRepository)
		assert.True(t, cached)
	})
}

func TestNewAuth(t *testing.T) {
	a := NewAuth(openTestDB(t), "secret", time.Hour)

	assert.NotNil(t, a.Handler)
	assert.NotNil(t, a.Authenticator)
}

// TestMigrate はフィーチャーの全テーブルが作成されることを検証します。
func TestMigrate(t *testing.T) {
	gdb := openTestDB(t)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(gdb))

	for _, table := range []string{"users", "posts", "post_tags"} {
		assert.True(t, gdb.Migrator().HasTable(table), "table %s should exist", table)
	}
}
