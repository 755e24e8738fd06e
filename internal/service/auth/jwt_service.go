// Package auth provides token issuance and password verification for the
// API's authentication flow. Tokens are stateless JWTs signed with
// HMAC-SHA256; a short-lived access token is paired with a longer-lived
// refresh token so clients can renew sessions without re-authenticating.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenType distinguishes access tokens from refresh tokens. The type is
// embedded in the token's claims and checked on validation so one kind
// can never be used in place of the other.
type TokenType string

const (
	// TokenTypeAccess marks short-lived tokens sent on every request.
	TokenTypeAccess TokenType = "access"
	// TokenTypeRefresh marks longer-lived tokens used only to obtain a
	// new token pair.
	TokenTypeRefresh TokenType = "refresh"
)

// Claims holds the validated contents of a token.
type Claims struct {
	UserID    uuid.UUID
	TokenType TokenType
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}

// TokenPair is an access/refresh token pair issued together.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// JWTService issues and validates signed tokens.
type JWTService interface {
	// GenerateTokenPair creates a new access/refresh pair for the user.
	GenerateTokenPair(ctx context.Context, userID uuid.UUID) (*TokenPair, error)

	// ValidateAccessToken checks an access token and returns its claims.
	// Returns ErrExpiredToken, ErrWrongTokenType, or ErrInvalidToken on
	// failure.
	ValidateAccessToken(ctx context.Context, token string) (*Claims, error)

	// ValidateRefreshToken checks a refresh token and returns its claims.
	ValidateRefreshToken(ctx context.Context, token string) (*Claims, error)
}
