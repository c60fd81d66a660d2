package jwtmw

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"blog_backend/internal/feature/auth/domain/entity"
	"blog_backend/internal/platform/http/response"
	"blog_backend/internal/shared/apperr"
	"blog_backend/internal/shared/identity"
)

// ContextIdentity is the gin context key holding the caller's identity.Identity.
const ContextIdentity = "identity"

var (
	errNoToken      = apperr.Unauthenticated("Not authorized to access this route")
	errUserNotFound = apperr.Unauthenticated("User not found")
)

// UserLookup resolves a token subject to a stored user.
type UserLookup interface {
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// Authenticator builds the mandatory and optional authentication middleware.
type Authenticator struct {
	tokens Verifier
	users  UserLookup
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(tokens Verifier, users UserLookup) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

// Protect rejects requests without a valid bearer token for an existing user.
func (a *Authenticator) Protect() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Error(c, errNoToken)
			return
		}
		userID, err := a.tokens.VerifyToken(tokenStr)
		if err != nil {
			response.Error(c, errNoToken)
			return
		}
		if _, err := a.users.FindByID(c.Request.Context(), userID); err != nil {
			if apperr.KindOf(err) == apperr.KindNotFound {
				response.Error(c, errUserNotFound)
				return
			}
			response.Error(c, err)
			return
		}
		c.Set(ContextIdentity, identity.Identity(identity.Identified{UserID: userID}))
		c.Next()
	}
}

// OptionalAuth attaches an identity when a valid token is presented and otherwise
// continues as anonymous. Store failures still abort the request.
func (a *Authenticator) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextIdentity, identity.Identity(identity.Anonymous{}))

		tokenStr, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}
		userID, err := a.tokens.VerifyToken(tokenStr)
		if err != nil {
			c.Next()
			return
		}
		if _, err := a.users.FindByID(c.Request.Context(), userID); err != nil {
			if apperr.KindOf(err) != apperr.KindNotFound {
				response.Error(c, err)
				return
			}
			c.Next()
			return
		}
		c.Set(ContextIdentity, identity.Identity(identity.Identified{UserID: userID}))
		c.Next()
	}
}

// IdentityFrom returns the identity attached by the middleware, Anonymous when none.
func IdentityFrom(c *gin.Context) identity.Identity {
	if v, ok := c.Get(ContextIdentity); ok {
		if id, ok := v.(identity.Identity); ok {
			return id
		}
	}
	return identity.Anonymous{}
}

// bearerToken extracts <token> from "Bearer <token>".
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
