package jwtmw

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any token that fails parsing, signature or expiry checks.
var ErrInvalidToken = errors.New("invalid token")

// Verifier checks a token and returns its subject.
type Verifier interface {
	VerifyToken(token string) (uint, error)
}

type verifier struct {
	secret []byte
}

// NewVerifier creates a Verifier for tokens signed by a Generator with the same secret.
func NewVerifier(secret string) *verifier {
	return &verifier{secret: []byte(secret)}
}

// VerifyToken validates signature, algorithm and expiry, and returns the numeric sub claim.
func (v *verifier) VerifyToken(tokenStr string) (uint, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// Only HMAC is accepted
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return v.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	// JWT numbers are decoded as float64
	sub, ok := claims["sub"].(float64)
	if !ok || sub < 1 || sub != float64(uint(sub)) {
		return 0, ErrInvalidToken
	}
	return uint(sub), nil
}
