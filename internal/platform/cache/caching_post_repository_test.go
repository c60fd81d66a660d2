package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"blog_backend/internal/feature/posts/domain/entity"
	"blog_backend/internal/feature/posts/usecase"
)

// mockPostRepository はテスト用のPostRepositoryモック実装です。
type mockPostRepository struct {
	findByIDFn   func(ctx context.Context, id uint) (*entity.Post, error)
	findBySlugFn func(ctx context.Context, slug string) (*entity.Post, error)
	saveFn       func(ctx context.Context, post *entity.Post) error
	softDeleteFn func(ctx context.Context, post *entity.Post) error
	calls        map[string]int
}

func (m *mockPostRepository) record(name string) {
	if m.calls == nil {
		m.calls = map[string]int{}
	}
	m.calls[name]++
}

func (m *mockPostRepository) Create(ctx context.Context, post *entity.Post) error {
	m.record("Create")
	return nil
}

func (m *mockPostRepository) FindByID(ctx context.Context, id uint) (*entity.Post, error) {
	m.record("FindByID")
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, usecase.ErrPostNotFound
}

func (m *mockPostRepository) FindBySlug(ctx context.Context, slug string) (*entity.Post, error) {
	m.record("FindBySlug")
	if m.findBySlugFn != nil {
		return m.findBySlugFn(ctx, slug)
	}
	return nil, usecase.ErrPostNotFound
}

func (m *mockPostRepository) Find(ctx context.Context, f usecase.PostFilter, page usecase.Page) ([]entity.Post, error) {
	m.record("Find")
	return nil, nil
}

func (m *mockPostRepository) Count(ctx context.Context, f usecase.PostFilter) (int64, error) {
	m.record("Count")
	return 0, nil
}

func (m *mockPostRepository) Save(ctx context.Context, post *entity.Post) error {
	m.record("Save")
	if m.saveFn != nil {
		return m.saveFn(ctx, post)
	}
	return nil
}

func (m *mockPostRepository) SoftDelete(ctx context.Context, post *entity.Post) error {
	m.record("SoftDelete")
	if m.softDeleteFn != nil {
		return m.softDeleteFn(ctx, post)
	}
	return nil
}

func samplePost() *entity.Post {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &entity.Post{
		ID:        1,
		Title:     "Hello World",
		Slug:      "hello-world",
		Content:   "body",
		AuthorID:  7,
		Author:    &entity.Author{ID: 7, Name: "alice", Email: "alice@example.com"},
		Status:    entity.StatusPublished,
		Tags:      []string{"go"},
		CreatedAt: at,
		UpdatedAt: at,
	}
}

// TestNewCachingPostRepository_Defaults はデフォルト値（TTLとnamespace）が正しく設定されることを検証します。
func TestNewCachingPostRepository_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{"default values when zero/empty", 0, "", 5 * time.Minute, "posts"},
		{"negative ttl uses default", -time.Minute, "", 5 * time.Minute, "posts"},
		{"custom values preserved", 10 * time.Minute, "custom", 10 * time.Minute, "custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewCachingPostRepository(nil, tt.ttl, &mockPostRepository{}, tt.namespace)

			if repo.ttl != tt.expectedTTL {
				t.Errorf("expected TTL %v, got %v", tt.expectedTTL, repo.ttl)
			}
			if repo.namespace != tt.expectedNamespace {
				t.Errorf("expected namespace %q, got %q", tt.expectedNamespace, repo.namespace)
			}
		})
	}
}

// TestCachingPostRepository_FindBySlug_NilRedis はRedisがnilの場合にキャッシュをバイパスすることを検証します。
func TestCachingPostRepository_FindBySlug_NilRedis(t *testing.T) {
	t.Parallel()

	inner := &mockPostRepository{
		findBySlugFn: func(ctx context.Context, slug string) (*entity.Post, error) {
			return samplePost(), nil
		},
	}

	repo := NewCachingPostRepository(nil, 5*time.Minute, inner, "posts")
	post, err := repo.FindBySlug(context.Background(), "hello-world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.ID != 1 {
		t.Errorf("expected post 1, got %d", post.ID)
	}
	if inner.calls["FindBySlug"] != 1 {
		t.Errorf("expected inner to be called once, got %d", inner.calls["FindBySlug"])
	}
}

// TestCachingPostRepository_FindBySlug_CacheHit はキャッシュヒット時に内部リポジトリを呼ばないことを検証します。
func TestCachingPostRepository_FindBySlug_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cachedJSON, _ := json.Marshal(samplePost())
	mock.ExpectGet("posts:slug:hello-world").SetVal(string(cachedJSON))

	inner := &mockPostRepository{}
	repo := NewCachingPostRepository(rdb, 5*time.Minute, inner, "posts")
	post, err := repo.FindBySlug(context.Background(), "hello-world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls["FindBySlug"] != 0 {
		t.Error("inner repository should not be called on cache hit")
	}
	if post.Author == nil || post.Author.Name != "alice" {
		t.Errorf("expected cached author, got %+v", post.Author)
	}
	if len(post.Tags) != 1 || post.Tags[0] != "go" {
		t.Errorf("expected cached tags, got %v", post.Tags)
	}
	if !post.CreatedAt.Equal(samplePost().CreatedAt) {
		t.Errorf("expected created at %v, got %v", samplePost().CreatedAt, post.CreatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingPostRepository_FindBySlug_CacheMiss はキャッシュミス時にDBから取得してキャッシュに保存することを検証します。
func TestCachingPostRepository_FindBySlug_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedJSON, _ := json.Marshal(samplePost())
	mock.ExpectGet("posts:slug:hello-world").RedisNil()
	mock.ExpectSet("posts:slug:hello-world", expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockPostRepository{
		findBySlugFn: func(ctx context.Context, slug string) (*entity.Post, error) {
			return samplePost(), nil
		},
	}

	repo := NewCachingPostRepository(rdb, 5*time.Minute, inner, "posts")
	if _, err := repo.FindBySlug(context.Background(), "hello-world"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingPostRepository_FindBySlug_NotFoundIsNotCached は存在しないスラッグがキャッシュされないことを検証します。
func TestCachingPostRepository_FindBySlug_NotFoundIsNotCached(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("posts:slug:missing").RedisNil()

	repo := NewCachingPostRepository(rdb, 5*time.Minute, &mockPostRepository{}, "posts")
	_, err := repo.FindBySlug(context.Background(), "missing")

	if !errors.Is(err, usecase.ErrPostNotFound) {
		t.Errorf("expected ErrPostNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingPostRepository_FindBySlug_CorruptedCache は破損したキャッシュを削除してDBにフォールバックすることを検証します。
func TestCachingPostRepository_FindBySlug_CorruptedCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedJSON, _ := json.Marshal(samplePost())
	mock.ExpectGet("posts:slug:hello-world").SetVal("invalid json")
	mock.ExpectDel("posts:slug:hello-world").SetVal(1)
	mock.ExpectSet("posts:slug:hello-world", expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockPostRepository{
		findBySlugFn: func(ctx context.Context, slug string) (*entity.Post, error) {
			return samplePost(), nil
		},
	}

	repo := NewCachingPostRepository(rdb, 5*time.Minute, inner, "posts")
	if _, err := repo.FindBySlug(context.Background(), "hello-world"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingPostRepository_Save_InvalidatesOldAndNewSlug はタイトル変更時に新旧両方のスラッグが無効化されることを検証します。
func TestCachingPostRepository_Save_InvalidatesOldAndNewSlug(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectDel("posts:slug:renamed", "posts:slug:hello-world").SetVal(1)

	inner := &mockPostRepository{
		findByIDFn: func(ctx context.Context, id uint) (*entity.Post, error) {
			return samplePost(), nil
		},
	}

	post := samplePost()
	post.SetTitle("Renamed")
	repo := NewCachingPostRepository(rdb, 5*time.Minute, inner, "posts")
	if err := repo.Save(context.Background(), post); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls["Save"] != 1 {
		t.Errorf("expected inner Save to be called once, got %d", inner.calls["Save"])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingPostRepository_Save_SameSlug はスラッグが変わらない場合に1つのキーのみ無効化することを検証します。
func TestCachingPostRepository_Save_SameSlug(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectDel("posts:slug:hello-world").SetVal(1)

	inner := &mockPostRepository{
		findByIDFn: func(ctx context.Context, id uint) (*entity.Post, error) {
			return samplePost(), nil
		},
	}

	post := samplePost()
	post.Content = "edited"
	repo := NewCachingPostRepository(rdb, 5*time.Minute, inner, "posts")
	if err := repo.Save(context.Background(), post); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingPostRepository_Save_InnerError は内部リポジトリのエラー時にキャッシュを触らないことを検証します。
func TestCachingPostRepository_Save_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	inner := &mockPostRepository{
		findByIDFn: func(ctx context.Context, id uint) (*entity.Post, error) {
			return samplePost(), nil
		},
		saveFn: func(ctx context.Context, post *entity.Post) error {
			return usecase.ErrSlugTaken
		},
	}

	repo := NewCachingPostRepository(rdb, 5*time.Minute, inner, "posts")
	err := repo.Save(context.Background(), samplePost())

	if !errors.Is(err, usecase.ErrSlugTaken) {
		t.Errorf("expected ErrSlugTaken, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingPostRepository_SoftDelete_Invalidates は論理削除後にスラッグのキャッシュが無効化されることを検証します。
func TestCachingPostRepository_SoftDelete_Invalidates(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectDel("posts:slug:hello-world").SetVal(1)

	inner := &mockPostRepository{}
	repo := NewCachingPostRepository(rdb, 5*time.Minute, inner, "posts")
	if err := repo.SoftDelete(context.Background(), samplePost()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls["SoftDelete"] != 1 {
		t.Errorf("expected inner SoftDelete to be called once, got %d", inner.calls["SoftDelete"])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingPostRepository_PassThrough はキャッシュ対象外の操作が内部リポジトリへ委譲されることを検証します。
func TestCachingPostRepository_PassThrough(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	inner := &mockPostRepository{}
	repo := NewCachingPostRepository(rdb, 5*time.Minute, inner, "posts")
	ctx := context.Background()

	_ = repo.Create(ctx, samplePost())
	_, _ = repo.FindByID(ctx, 1)
	_, _ = repo.Find(ctx, usecase.PostFilter{}, usecase.Page{Number: 1, Size: 10})
	_, _ = repo.Count(ctx, usecase.PostFilter{})

	for _, name := range []string{"Create", "FindByID", "Find", "Count"} {
		if inner.calls[name] != 1 {
			t.Errorf("expected inner %s to be called once, got %d", name, inner.calls[name])
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingPostRepository_FindBySlug_NoKeyAliasing は a:b の検索が a_b のキャッシュを返さないことを検証します。
func TestCachingPostRepository_FindBySlug_NoKeyAliasing(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("posts:slug:a%3Ab").RedisNil()

	var asked string
	inner := &mockPostRepository{
		findBySlugFn: func(ctx context.Context, slug string) (*entity.Post, error) {
			asked = slug
			return nil, usecase.ErrPostNotFound
		},
	}

	repo := NewCachingPostRepository(rdb, 5*time.Minute, inner, "posts")
	post, err := repo.FindBySlug(context.Background(), "a:b")
	if !errors.Is(err, usecase.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got post=%+v err=%v", post, err)
	}
	if asked != "a:b" {
		t.Errorf("expected inner lookup of exact slug %q, got %q", "a:b", asked)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingPostRepository_FindBySlug_MismatchedEntry は別スラッグのキャッシュを破棄してDBから再取得することを検証します。
func TestCachingPostRepository_FindBySlug_MismatchedEntry(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	other := samplePost()
	other.ID = 7
	other.Slug = "a_b"
	staleJSON, _ := json.Marshal(other)
	freshJSON, _ := json.Marshal(samplePost())

	mock.ExpectGet("posts:slug:hello-world").SetVal(string(staleJSON))
	mock.ExpectDel("posts:slug:hello-world").SetVal(1)
	mock.ExpectSet("posts:slug:hello-world", freshJSON, 5*time.Minute).SetVal("OK")

	inner := &mockPostRepository{
		findBySlugFn: func(ctx context.Context, slug string) (*entity.Post, error) {
			return samplePost(), nil
		},
	}

	repo := NewCachingPostRepository(rdb, 5*time.Minute, inner, "posts")
	post, err := repo.FindBySlug(context.Background(), "hello-world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.ID != 1 || post.Slug != "hello-world" {
		t.Errorf("expected post 1 hello-world, got id=%d slug=%q", post.ID, post.Slug)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}
