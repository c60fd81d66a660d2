// Package usecase はpostsフィーチャーのビジネスロジックと可視性ポリシーを実装します。
package usecase

import (
	"context"
	"strings"
	"time"

	"blog_backend/internal/feature/posts/domain/entity"
	"blog_backend/internal/shared/identity"
)

// PostRepository はポストの永続化層を抽象化します。
// Every method ignores soft-deleted posts; none offers a way around that.
type PostRepository interface {
	// Create persists post and fills ID, timestamps and Author.
	// Returns ErrSlugTaken when the slug is already used.
	Create(ctx context.Context, post *entity.Post) error

	// FindByID returns the live post with id and its author, or ErrPostNotFound.
	FindByID(ctx context.Context, id uint) (*entity.Post, error)

	// FindBySlug returns the live post with slug and its author, or ErrPostNotFound.
	FindBySlug(ctx context.Context, slug string) (*entity.Post, error)

	// Find returns one page of posts matching f, newest first.
	Find(ctx context.Context, f PostFilter, page Page) ([]entity.Post, error)

	// Count returns the number of posts matching f.
	Count(ctx context.Context, f PostFilter) (int64, error)

	// Save writes title, slug, content, status and tags of an existing post.
	// Returns ErrSlugTaken when the new slug is already used.
	Save(ctx context.Context, post *entity.Post) error

	// SoftDelete stamps post.DeletedAt and changes nothing else.
	SoftDelete(ctx context.Context, post *entity.Post) error
}

// CreateInput is a validated create request.
type CreateInput struct {
	Title   string
	Content string
	Status  entity.Status
	Tags    []string
}

// ListResult is one page of visible posts.
type ListResult struct {
	Posts []entity.Post
	Page  Page
	Total int64
	Pages int
}

// postUsecase はポスト操作のユースケースを実装します。
type postUsecase struct {
	posts PostRepository
	now   func() time.Time
}

// NewPostUsecase はpostUsecaseの新しいインスタンスを生成します。
func NewPostUsecase(posts PostRepository) *postUsecase {
	return &postUsecase{posts: posts, now: time.Now}
}

// Create stores a new post authored by the caller. Status defaults to draft.
func (u *postUsecase) Create(ctx context.Context, who identity.Identity, in CreateInput) (*entity.Post, error) {
	uid, ok := identity.UserID(who)
	if !ok {
		return nil, ErrUnauthenticated
	}

	status := in.Status
	if status == "" {
		status = entity.StatusDraft
	}
	post := &entity.Post{
		AuthorID: uid,
		Content:  strings.TrimSpace(in.Content),
		Status:   status,
		Tags:     entity.NormalizeTags(in.Tags),
	}
	post.SetTitle(in.Title)

	if err := u.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// List returns the page of posts visible to the caller.
func (u *postUsecase) List(ctx context.Context, who identity.Identity, q ListQuery) (*ListResult, error) {
	filter, err := BuildListFilter(q, who)
	if err != nil {
		return nil, err
	}
	page := NewPage(q.Page, q.Limit)

	posts, err := u.posts.Find(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	total, err := u.posts.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Posts: posts,
		Page:  page,
		Total: total,
		Pages: PageCount(total, page.Size),
	}, nil
}

// GetBySlug returns the post with slug if the caller may view it.
// Hidden drafts fail exactly like missing posts.
func (u *postUsecase) GetBySlug(ctx context.Context, who identity.Identity, slug string) (*entity.Post, error) {
	post, err := u.posts.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !CanView(post, who) {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// Update applies a partial update to the caller's own post.
// Load, check and save are not atomic; concurrent updates are last-write-wins.
func (u *postUsecase) Update(ctx context.Context, who identity.Identity, id uint, in UpdateInput) (*entity.Post, error) {
	post, err := u.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeMutation(post, who, ActionUpdate); err != nil {
		return nil, err
	}

	ApplyUpdate(post, in)
	if err := u.posts.Save(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete soft-deletes the caller's own post.
func (u *postUsecase) Delete(ctx context.Context, who identity.Identity, id uint) error {
	post, err := u.posts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := AuthorizeMutation(post, who, ActionDelete); err != nil {
		return err
	}

	now := u.now()
	post.DeletedAt = &now
	return u.posts.SoftDelete(ctx, post)
}
