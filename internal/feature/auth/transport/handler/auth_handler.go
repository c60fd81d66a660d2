// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"blog_backend/internal/api"
	"blog_backend/internal/feature/auth/domain/entity"
	"blog_backend/internal/platform/http/response"
	"blog_backend/internal/platform/validation"
	"blog_backend/internal/shared/apperr"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は新規ユーザーを登録し、そのユーザーのトークンを返します。
	Register(ctx context.Context, name, email, password string) (*entity.User, string, error)
	// Login はユーザーを認証し、成功時にトークンを返します。
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
}

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

var (
	registerRules = validation.Rules[api.RegisterRequest]{
		{Field: "name", Message: "Name is required", Check: func(r api.RegisterRequest) bool {
			return validation.NotBlank(r.Name)
		}},
		{Field: "email", Message: "Email is required", Check: func(r api.RegisterRequest) bool {
			return validation.NotBlank(r.Email)
		}},
		{Field: "email", Message: "Please provide a valid email", Check: func(r api.RegisterRequest) bool {
			return validation.IsEmail(strings.TrimSpace(r.Email))
		}},
		{Field: "password", Message: "Password is required", Check: func(r api.RegisterRequest) bool {
			return validation.NotBlank(r.Password)
		}},
		{Field: "password", Message: "Password must be at least 6 characters", Check: func(r api.RegisterRequest) bool {
			return validation.MinLength(strings.TrimSpace(r.Password), MinPasswordLength)
		}},
	}

	loginRules = validation.Rules[api.LoginRequest]{
		{Field: "email", Message: "Email is required", Check: func(r api.LoginRequest) bool {
			return validation.NotBlank(r.Email)
		}},
		{Field: "email", Message: "Please provide a valid email", Check: func(r api.LoginRequest) bool {
			return validation.IsEmail(strings.TrimSpace(r.Email))
		}},
		{Field: "password", Message: "Password is required", Check: func(r api.LoginRequest) bool {
			return validation.NotBlank(r.Password)
		}},
	}
)

// AuthHandler は認証操作のHTTPリクエストを処理します。
// AuthUsecaseインターフェースに依存し、JSONリクエスト/レスポンスを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時は全ての失敗をまとめて400を返却
// - メール重複時は400を返却
// - 成功時はユーザーとトークンを201で返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req api.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register request malformed", "error", err, "remote_addr", c.ClientIP())
		response.Error(c, validation.ErrInvalidBody)
		return
	}
	if err := registerRules.Validate(req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		response.Error(c, err)
		return
	}

	user, token, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindConflict {
			slog.Warn("register failed", "error", err, "remote_addr", c.ClientIP())
		}
		response.Error(c, err)
		return
	}
	slog.Info("user registered", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, authResponse(user, token))
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - 認証失敗時は理由を区別せず401を返却
// - 認証成功時はユーザーとトークンを200で返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login request malformed", "error", err, "remote_addr", c.ClientIP())
		response.Error(c, validation.ErrInvalidBody)
		return
	}
	if err := loginRules.Validate(req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		response.Error(c, err)
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// ユーザー列挙攻撃を防止するため、どちらが誤っていたかは記録しない
		if apperr.KindOf(err) == apperr.KindUnauthenticated {
			slog.Warn("login failed", "remote_addr", c.ClientIP())
		}
		response.Error(c, err)
		return
	}
	slog.Info("user login successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, authResponse(user, token))
}

func authResponse(u *entity.User, token string) api.AuthResponse {
	return api.AuthResponse{
		Success: true,
		Data: api.AuthPayload{
			Token: token,
			User: api.User{
				Id:        u.ID,
				Name:      u.Name,
				Email:     openapi_types.Email(u.Email),
				CreatedAt: u.CreatedAt,
			},
		},
	}
}
