// Package jwtmw issues and verifies HS256 identity tokens and provides the gin authentication middleware.
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Generator issues a signed token whose sub claim is the user id.
type Generator interface {
	GenerateToken(userID uint, email string) (string, error)
}

type generator struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

var _ Generator = (*generator)(nil)

// errEmptySecret guards against signing with a zero-length HMAC key.
var errEmptySecret = errors.New("jwt secret is empty")

// NewGenerator returns a Generator signing with secret. Tokens expire ttl after issue.
func NewGenerator(secret string, ttl time.Duration) *generator {
	return &generator{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// GenerateToken signs {sub, email, iat, exp} with HS256.
// sub is numeric so the verifier can read it back without parsing.
func (g *generator) GenerateToken(userID uint, email string) (string, error) {
	if len(g.secret) == 0 {
		return "", errEmptySecret
	}
	issued := g.now()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"iat":   issued.Unix(),
		"exp":   issued.Add(g.ttl).Unix(),
	}).SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("sign token for user %d: %w", userID, err)
	}
	return signed, nil
}
