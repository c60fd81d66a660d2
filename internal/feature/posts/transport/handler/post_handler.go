// Package handler はpostsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"blog_backend/internal/api"
	"blog_backend/internal/feature/posts/domain/entity"
	"blog_backend/internal/feature/posts/usecase"
	"blog_backend/internal/platform/http/response"
	jwtmw "blog_backend/internal/platform/jwt"
	"blog_backend/internal/platform/validation"
	"blog_backend/internal/shared/apperr"
	"blog_backend/internal/shared/identity"
)

// PostUsecase はポスト操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type PostUsecase interface {
	Create(ctx context.Context, who identity.Identity, in usecase.CreateInput) (*entity.Post, error)
	List(ctx context.Context, who identity.Identity, q usecase.ListQuery) (*usecase.ListResult, error)
	GetBySlug(ctx context.Context, who identity.Identity, slug string) (*entity.Post, error)
	Update(ctx context.Context, who identity.Identity, id uint, in usecase.UpdateInput) (*entity.Post, error)
	Delete(ctx context.Context, who identity.Identity, id uint) error
}

const (
	msgStatusInvalid = "Status must be either draft or published"
	msgTagsNotArray  = "Tags must be an array"
	msgDeleted       = "Post deleted successfully"
)

// createBody と updateBody は tags を遅延デコードし、型不一致を他のルールと一緒に報告します。
type createBody struct {
	api.CreatePostRequest
	Tags json.RawMessage `json:"tags,omitempty"`
}

type updateBody struct {
	api.UpdatePostRequest
	Tags json.RawMessage `json:"tags,omitempty"`
}

func validTags(raw json.RawMessage) bool {
	if !validation.Present(raw) {
		return true
	}
	_, ok := validation.StringList(raw)
	return ok
}

var (
	errInvalidAuthorID = apperr.Validation("Invalid author id",
		apperr.FieldError{Field: "author", Message: "Invalid author id"})

	createRules = validation.Rules[createBody]{
		{Field: "title", Message: "Title is required", Check: func(r createBody) bool {
			return validation.NotBlank(r.Title)
		}},
		{Field: "content", Message: "Content is required", Check: func(r createBody) bool {
			return validation.NotBlank(r.Content)
		}},
		{Field: "status", Message: msgStatusInvalid, Check: func(r createBody) bool {
			return r.Status == nil || validStatus(*r.Status)
		}},
		{Field: "tags", Message: msgTagsNotArray, Check: func(r createBody) bool {
			return validTags(r.Tags)
		}},
	}

	updateRules = validation.Rules[updateBody]{
		{Field: "title", Message: "Title cannot be empty", Check: func(r updateBody) bool {
			return r.Title == nil || validation.NotBlank(*r.Title)
		}},
		{Field: "content", Message: "Content cannot be empty", Check: func(r updateBody) bool {
			return r.Content == nil || validation.NotBlank(*r.Content)
		}},
		{Field: "status", Message: msgStatusInvalid, Check: func(r updateBody) bool {
			return r.Status == nil || validStatus(*r.Status)
		}},
		{Field: "tags", Message: msgTagsNotArray, Check: func(r updateBody) bool {
			return validTags(r.Tags)
		}},
	}
)

func validStatus(s api.PostStatus) bool {
	return validation.OneOf(string(s), string(api.PostStatusDraft), string(api.PostStatusPublished))
}

// PostHandler はポスト操作のHTTPリクエストを処理します。
type PostHandler struct {
	posts PostUsecase
}

// NewPostHandler はPostHandlerの新しいインスタンスを生成します。
func NewPostHandler(posts PostUsecase) *PostHandler {
	return &PostHandler{posts: posts}
}

// Create は POST /api/posts を処理します。
// - 成功時は作成者を含むポストを201で返却
func (h *PostHandler) Create(c *gin.Context) {
	var req createBody
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, validation.ErrInvalidBody)
		return
	}
	if err := createRules.Validate(req); err != nil {
		response.Error(c, err)
		return
	}

	in := usecase.CreateInput{Title: req.Title, Content: req.Content}
	if req.Status != nil {
		in.Status = entity.Status(*req.Status)
	}
	if validation.Present(req.Tags) {
		in.Tags, _ = validation.StringList(req.Tags)
	}

	who := jwtmw.IdentityFrom(c)
	post, err := h.posts.Create(c.Request.Context(), who, in)
	if err != nil {
		response.Error(c, err)
		return
	}
	slog.Info("post created", "post_id", post.ID, "slug", post.Slug, "author_id", post.AuthorID)
	c.JSON(http.StatusCreated, api.PostResponse{Success: true, Data: toAPIPost(post)})
}

// List は GET /api/posts を処理します。
// 不正なpage/limitはデフォルト値に置き換えられます。
func (h *PostHandler) List(c *gin.Context) {
	q := usecase.ListQuery{
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
		Search: c.Query("search"),
		Tag:    c.Query("tag"),
		Status: c.Query("status"),
	}
	if raw := c.Query("author"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 0)
		if err != nil {
			response.Error(c, errInvalidAuthorID)
			return
		}
		author := uint(id)
		q.AuthorID = &author
	}

	res, err := h.posts.List(c.Request.Context(), jwtmw.IdentityFrom(c), q)
	if err != nil {
		response.Error(c, err)
		return
	}

	data := make([]api.Post, 0, len(res.Posts))
	for i := range res.Posts {
		data = append(data, toAPIPost(&res.Posts[i]))
	}
	c.JSON(http.StatusOK, api.PostListResponse{
		Success: true,
		Data:    data,
		Pagination: api.Pagination{
			Page:  res.Page.Number,
			Limit: res.Page.Size,
			Total: res.Total,
			Pages: res.Pages,
		},
	})
}

// GetBySlug は GET /api/posts/:slug を処理します。
// 閲覧できない下書きは存在しないポストと同じ404を返します。
func (h *PostHandler) GetBySlug(c *gin.Context) {
	post, err := h.posts.GetBySlug(c.Request.Context(), jwtmw.IdentityFrom(c), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, api.PostResponse{Success: true, Data: toAPIPost(post)})
}

// Update は PUT /api/posts/:id を処理します。
// リクエストに含まれるフィールドのみを更新します。
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		response.Error(c, usecase.ErrPostNotFound)
		return
	}

	var req updateBody
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, validation.ErrInvalidBody)
		return
	}
	if err := updateRules.Validate(req); err != nil {
		response.Error(c, err)
		return
	}

	var in usecase.UpdateInput
	if validation.Present(req.Tags) {
		tags, _ := validation.StringList(req.Tags)
		in.Tags = &tags
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		in.Title = &title
	}
	if req.Content != nil {
		content := strings.TrimSpace(*req.Content)
		in.Content = &content
	}
	if req.Status != nil {
		status := entity.Status(*req.Status)
		in.Status = &status
	}

	who := jwtmw.IdentityFrom(c)
	post, err := h.posts.Update(c.Request.Context(), who, id, in)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindForbidden {
			slog.Warn("post update rejected", "post_id", id, "remote_addr", c.ClientIP())
		}
		response.Error(c, err)
		return
	}
	slog.Info("post updated", "post_id", post.ID, "slug", post.Slug)
	c.JSON(http.StatusOK, api.PostResponse{Success: true, Data: toAPIPost(post)})
}

// Delete は DELETE /api/posts/:id を処理します。
// ポストは論理削除され、以後どの取得経路からも返されません。
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		response.Error(c, usecase.ErrPostNotFound)
		return
	}

	if err := h.posts.Delete(c.Request.Context(), jwtmw.IdentityFrom(c), id); err != nil {
		if apperr.KindOf(err) == apperr.KindForbidden {
			slog.Warn("post delete rejected", "post_id", id, "remote_addr", c.ClientIP())
		}
		response.Error(c, err)
		return
	}
	slog.Info("post deleted", "post_id", id)
	response.Message(c, http.StatusOK, msgDeleted)
}

// postID parses the :id path parameter. A malformed id cannot name a post.
func postID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// queryInt returns the integer query parameter name, or 0 when absent or malformed.
func queryInt(c *gin.Context, name string) int {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return n
}

func toAPIPost(p *entity.Post) api.Post {
	author := api.Author{Id: p.AuthorID}
	if p.Author != nil {
		author = api.Author{
			Id:    p.Author.ID,
			Name:  p.Author.Name,
			Email: openapi_types.Email(p.Author.Email),
		}
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return api.Post{
		Id:        p.ID,
		Title:     p.Title,
		Slug:      p.Slug,
		Content:   p.Content,
		Author:    author,
		Status:    api.PostStatus(p.Status),
		Tags:      tags,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
