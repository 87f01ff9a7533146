package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the lifetime of tokens issued for local use.
const DefaultTokenTTL = 24 * time.Hour

const bearerPrefix = "Bearer "

type contextKey struct{}

var (
	errMissingHeader = errors.New("authorization header missing")
	errNoBearer      = errors.New("invalid authorization format: missing Bearer prefix")
	errEmptyToken    = errors.New("invalid authorization format: empty token")
)

// GenerateToken issues an HS256 token for userID valid for ttl.
func GenerateToken(userID string, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken verifies an HS256 token against secret and returns its claims.
// Expired tokens and other signing methods are rejected.
func ParseToken(raw, secret string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	return claims, nil
}

// bearerToken extracts the token from an Authorization header value.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errMissingHeader
	}
	token, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok {
		return "", errNoBearer
	}
	if token == "" {
		return "", errEmptyToken
	}
	return token, nil
}

// authenticate validates the Authorization header and returns ctx carrying
// the token's claims.
func authenticate(ctx context.Context, header, secret string) (context.Context, error) {
	raw, err := bearerToken(header)
	if err != nil {
		return ctx, err
	}
	claims, err := ParseToken(raw, secret)
	if err != nil {
		return ctx, err
	}
	return context.WithValue(ctx, contextKey{}, claims), nil
}

// Subject returns the subject of the token that authorized ctx, if any.
func Subject(ctx context.Context) (string, bool) {
	claims, ok := ctx.Value(contextKey{}).(*jwt.RegisteredClaims)
	if !ok {
		return "", false
	}
	return claims.Subject, true
}
