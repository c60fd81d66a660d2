package adapters

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"blog_backend/internal/feature/posts/domain/entity"
	"blog_backend/internal/feature/posts/usecase"
	"blog_backend/internal/platform/db/dberr"
)

// postGorm はPostRepositoryインターフェースのGORM実装です。
// 論理削除された行はgorm.DeletedAtのデフォルトスコープにより常に除外されます。
type postGorm struct {
	db *gorm.DB
}

// postGormがPostRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.PostRepository = (*postGorm)(nil)

// NewPostRepository は指定されたgorm.DB接続でpostGormの新しいインスタンスを生成します。
func NewPostRepository(db *gorm.DB) *postGorm {
	return &postGorm{db: db}
}

// likeEscaper escapes LIKE metacharacters so a search term matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// withAssociations preloads the author's public fields and the tags in insertion order.
func withAssociations(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Author", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		}).
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("post_tags.id")
		})
}

// applyFilter adds the WHERE clauses for f. All conditions are ANDed.
func applyFilter(q *gorm.DB, f usecase.PostFilter) *gorm.DB {
	if f.Search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(f.Search)) + "%"
		q = q.Where(`(LOWER(posts.title) LIKE ? ESCAPE '\' OR LOWER(posts.content) LIKE ? ESCAPE '\')`, pattern, pattern)
	}
	if f.Tag != "" {
		q = q.Where("EXISTS (SELECT 1 FROM post_tags WHERE post_tags.post_id = posts.id AND post_tags.name = ?)", f.Tag)
	}
	if f.AuthorID != nil {
		q = q.Where("posts.author_id = ?", *f.AuthorID)
	}
	if f.Status != nil {
		q = q.Where("posts.status = ?", string(*f.Status))
	}
	if f.VisibleTo != nil {
		q = q.Where("(posts.status = ? OR posts.author_id = ?)", string(entity.StatusPublished), *f.VisibleTo)
	}
	return q
}

// Create はポストとタグを1回のトランザクションで追加し、作成者を読み込み直します。
// スラッグが既に使われている場合、usecase.ErrSlugTakenを返します。
func (r *postGorm) Create(ctx context.Context, post *entity.Post) error {
	if post == nil {
		return errors.New("post is nil")
	}
	m := fromEntity(post)
	if err := r.db.WithContext(ctx).Omit("Author").Create(m).Error; err != nil {
		if dberr.IsDuplicateKey(err) {
			return usecase.ErrSlugTaken
		}
		return err
	}
	return r.reload(ctx, m.ID, post)
}

// FindByID はIDでポストを取得します。
// 存在しないか論理削除済みの場合、usecase.ErrPostNotFoundを返します。
func (r *postGorm) FindByID(ctx context.Context, id uint) (*entity.Post, error) {
	return r.first(ctx, "posts.id = ?", id)
}

// FindBySlug はスラッグでポストを取得します。
// 存在しないか論理削除済みの場合、usecase.ErrPostNotFoundを返します。
func (r *postGorm) FindBySlug(ctx context.Context, slug string) (*entity.Post, error) {
	return r.first(ctx, "posts.slug = ?", slug)
}

// Find は条件に一致するポストを新しい順に1ページ分取得します。
func (r *postGorm) Find(ctx context.Context, f usecase.PostFilter, page usecase.Page) ([]entity.Post, error) {
	var models []PostModel
	q := applyFilter(r.db.WithContext(ctx).Model(&PostModel{}), f)
	err := withAssociations(q).
		Order("posts.created_at DESC").
		Order("posts.id DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	posts := make([]entity.Post, 0, len(models))
	for i := range models {
		posts = append(posts, *toEntity(&models[i]))
	}
	return posts, nil
}

// Count は条件に一致するポストの件数を返します。
func (r *postGorm) Count(ctx context.Context, f usecase.PostFilter) (int64, error) {
	var n int64
	if err := applyFilter(r.db.WithContext(ctx).Model(&PostModel{}), f).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// Save はタイトル・スラッグ・本文・ステータスを更新し、タグを置き換えます。
// スラッグが既に使われている場合、usecase.ErrSlugTakenを返します。
func (r *postGorm) Save(ctx context.Context, post *entity.Post) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&PostModel{}).Where("id = ?", post.ID).Updates(map[string]any{
			"title":   post.Title,
			"slug":    post.Slug,
			"content": post.Content,
			"status":  string(post.Status),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrPostNotFound
		}

		if err := tx.Where("post_id = ?", post.ID).Delete(&PostTagModel{}).Error; err != nil {
			return err
		}
		if len(post.Tags) == 0 {
			return nil
		}
		tags := tagModels(post.ID, post.Tags)
		return tx.Create(&tags).Error
	})
	if err != nil {
		if dberr.IsDuplicateKey(err) {
			return usecase.ErrSlugTaken
		}
		return err
	}
	return r.reload(ctx, post.ID, post)
}

// SoftDelete はdeleted_atのみを設定します。updated_atを含む他の列は変更しません。
func (r *postGorm) SoftDelete(ctx context.Context, post *entity.Post) error {
	at := time.Now()
	if post.DeletedAt != nil {
		at = *post.DeletedAt
	}
	res := r.db.WithContext(ctx).Model(&PostModel{}).Where("id = ?", post.ID).UpdateColumn("deleted_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrPostNotFound
	}
	post.DeletedAt = &at
	return nil
}

func (r *postGorm) first(ctx context.Context, query string, arg any) (*entity.Post, error) {
	var m PostModel
	if err := withAssociations(r.db.WithContext(ctx)).Where(query, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrPostNotFound
		}
		return nil, err
	}
	return toEntity(&m), nil
}

// reload overwrites post with the stored row, populating generated columns and Author.
func (r *postGorm) reload(ctx context.Context, id uint, post *entity.Post) error {
	stored, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	*post = *stored
	return nil
}
