package di

import (
	"time"

	"gorm.io/gorm"

	authadapters "blog_backend/internal/feature/auth/adapters"
	authhandler "blog_backend/internal/feature/auth/transport/handler"
	authusecase "blog_backend/internal/feature/auth/usecase"
	jwtmw "blog_backend/internal/platform/jwt"
)

// Auth bundles the auth handler and the middleware factory that share one user store and secret.
type Auth struct {
	Handler       *authhandler.AuthHandler
	Authenticator *jwtmw.Authenticator
}

// NewAuth wires the credential store, token service and authentication gate.
func NewAuth(db *gorm.DB, secret string, expiry time.Duration) Auth {
	users := authadapters.NewUserRepository(db)
	uc := authusecase.NewAuthUsecase(users, jwtmw.NewGenerator(secret, expiry))
	return Auth{
		Handler:       authhandler.NewAuthHandler(uc),
		Authenticator: jwtmw.NewAuthenticator(jwtmw.NewVerifier(secret), users),
	}
}
