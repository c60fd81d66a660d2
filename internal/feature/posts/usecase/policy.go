package usecase

import (
	"fmt"

	"blog_backend/internal/feature/posts/domain/entity"
	"blog_backend/internal/shared/apperr"
	"blog_backend/internal/shared/identity"
)

const (
	// DefaultPage is the page used when none or an invalid one is given.
	DefaultPage = 1
	// DefaultLimit is the page size used when none or an invalid one is given.
	DefaultLimit = 10
	// MaxLimit caps the page size.
	MaxLimit = 100
)

// Action is a mutation a caller asks to perform on a post.
type Action string

const (
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// ListQuery is the caller-supplied listing request. Empty strings mean "not given".
type ListQuery struct {
	Page     int
	Limit    int
	Search   string
	Tag      string
	AuthorID *uint
	Status   string
}

// PostFilter is the effective store filter. Soft-deleted posts are always excluded by the store.
type PostFilter struct {
	// Search matches title or content, case-insensitive substring.
	Search string
	// Tag must be one of the post's tags.
	Tag string
	// AuthorID restricts to one author.
	AuthorID *uint
	// Status restricts to one status.
	Status *entity.Status
	// VisibleTo, when set, restricts to published posts plus drafts authored by *VisibleTo.
	VisibleTo *uint
}

// Page is a 1-indexed page request.
type Page struct {
	Number int
	Size   int
}

// Offset is the number of records skipped before this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// NewPage applies defaults to page numbers and sizes below 1 and caps the size at MaxLimit.
func NewPage(number, size int) Page {
	if number < 1 {
		number = DefaultPage
	}
	if size < 1 {
		size = DefaultLimit
	}
	if size > MaxLimit {
		size = MaxLimit
	}
	return Page{Number: number, Size: size}
}

// PageCount returns ceil(total/size).
func PageCount(total int64, size int) int {
	if size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}

// BuildListFilter turns a listing request into the filter the caller is allowed to see.
//
// An explicit status filter needs an identified caller. status=draft always pins the author
// to the caller, replacing any author filter the caller asked for. Without a status filter,
// anonymous callers see published posts and identified callers see published posts plus
// their own drafts.
func BuildListFilter(q ListQuery, who identity.Identity) (PostFilter, error) {
	f := PostFilter{
		Search:   q.Search,
		Tag:      q.Tag,
		AuthorID: q.AuthorID,
	}
	uid, identified := identity.UserID(who)

	if q.Status != "" {
		if !identified {
			return PostFilter{}, ErrStatusFilterRequiresAuth
		}
		status := entity.Status(q.Status)
		if !status.Valid() {
			return PostFilter{}, ErrInvalidStatus
		}
		f.Status = &status
		if status == entity.StatusDraft {
			f.AuthorID = &uid
		}
		return f, nil
	}

	if !identified {
		published := entity.StatusPublished
		f.Status = &published
		return f, nil
	}
	f.VisibleTo = &uid
	return f, nil
}

// CanView reports whether who may read post: published posts are public, drafts are author-only.
func CanView(post *entity.Post, who identity.Identity) bool {
	if post == nil || post.IsDeleted() {
		return false
	}
	if post.Status == entity.StatusPublished {
		return true
	}
	return identity.Is(who, post.AuthorID)
}

// AuthorizeMutation allows only the author of a live post to update or delete it.
func AuthorizeMutation(post *entity.Post, who identity.Identity, action Action) error {
	if post == nil || post.IsDeleted() {
		return ErrPostNotFound
	}
	if !identity.Is(who, post.AuthorID) {
		return apperr.Forbidden(fmt.Sprintf("Not authorized to %s this post", action))
	}
	return nil
}

// UpdateInput holds the fields a caller sent. Nil means absent.
type UpdateInput struct {
	Title   *string
	Content *string
	Status  *entity.Status
	Tags    *[]string
}

// ApplyUpdate copies present, non-empty fields onto post. A changed title recomputes the slug.
// An explicit empty tag list clears the tags.
func ApplyUpdate(post *entity.Post, in UpdateInput) {
	if in.Title != nil && *in.Title != "" {
		post.SetTitle(*in.Title)
	}
	if in.Content != nil && *in.Content != "" {
		post.Content = *in.Content
	}
	if in.Status != nil && *in.Status != "" {
		post.Status = *in.Status
	}
	if in.Tags != nil {
		post.Tags = entity.NormalizeTags(*in.Tags)
	}
}
