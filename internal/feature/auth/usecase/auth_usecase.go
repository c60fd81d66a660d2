// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"blog_backend/internal/feature/auth/domain/entity"

	"golang.org/x/crypto/bcrypt"
)

// UserRepository は著者アカウントの保存先です。
type UserRepository interface {
	// Create は user を保存し ID と作成日時を埋めます。メール重複時は ErrEmailAlreadyExists。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は正規化済みメールで検索します。見つからなければ ErrUserNotFound。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID はトークンの sub からユーザーを引きます。見つからなければ ErrUserNotFound。
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// JWTGenerator は登録・ログイン成功時に返すトークンを発行します。
type JWTGenerator interface {
	GenerateToken(userID uint, email string) (string, error)
}

// dummyHash is compared against when the email is unknown so both login failures cost one bcrypt run.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users        UserRepository
	jwtGenerator JWTGenerator
	hashCost     int
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, jwtGenerator JWTGenerator) *authUsecase {
	return &authUsecase{
		users:        users,
		jwtGenerator: jwtGenerator,
		hashCost:     bcrypt.DefaultCost,
	}
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// passwordDigest は前後の空白を除いたパスワードを SHA-256 で 44 バイトに畳みます。
// bcrypt は 72 バイトを超える入力を拒否するため、長さに関係なくこの値をハッシュします。
func passwordDigest(password string) []byte {
	sum := sha256.Sum256([]byte(strings.TrimSpace(password)))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録し、トークンを発行します。
// 入力の形式チェックはハンドラー側のルールで済んでいる前提です。
func (u *authUsecase) Register(ctx context.Context, name, email, password string) (*entity.User, string, error) {
	hashed, err := bcrypt.GenerateFromPassword(passwordDigest(password), u.hashCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{
		Name:     strings.TrimSpace(name),
		Email:    NormalizeEmail(email),
		Password: string(hashed),
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

// Login はユーザーを認証し、成功時にJWTトークンを返します。
// 未登録メールとパスワード不一致はどちらもErrInvalidCredentialsになります。
func (u *authUsecase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := u.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, "", err
	}

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}

	// 未登録でも bcrypt を一回走らせる
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), passwordDigest(password))
	if err != nil || compareErr != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}
