// Package jwtmw provides JWT issuance, verification, and the Gin
// middleware that gates protected routes.
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired is returned when a token's expiry has passed.
	ErrTokenExpired = errors.New("token has expired")

	// ErrTokenInvalid is returned for any other verification failure
	// (bad signature, malformed token, unexpected signing method).
	ErrTokenInvalid = errors.New("token is invalid")
)

// Claims are the facts embedded in an access token.
type Claims struct {
	UserID uint
	Email  string
}

// Generator issues and verifies signed access tokens. The signing
// secret and token lifetime are fixed at construction; rotating the
// secret invalidates all previously issued tokens.
type Generator struct {
	secret     []byte
	expiration time.Duration
}

// NewGenerator creates a Generator with the provided secret and token lifetime.
func NewGenerator(secret string, expiration time.Duration) *Generator {
	return &Generator{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// GenerateToken creates a signed HS256 token carrying the user's identity.
func (g *Generator) GenerateToken(userID uint, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(g.expiration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// VerifyToken checks the token's signature and expiry and returns the
// embedded claims. Signature failures and expiry are distinct errors
// for logging; callers surface both identically to clients.
func (g *Generator) VerifyToken(tokenStr string) (*Claims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// Only HMAC is accepted; a token signed with another method is forged.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return g.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}

	sub, ok := mapClaims["sub"].(float64) // JWT numbers are decoded as float64
	if !ok {
		return nil, ErrTokenInvalid
	}

	claims := &Claims{UserID: uint(sub)}
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}

	return claims, nil
}
