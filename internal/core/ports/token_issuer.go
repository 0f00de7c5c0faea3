package ports

import (
	"context"
	"time"
)

// TokenClaims is the identity carried by a verified access token.
type TokenClaims struct {
	UserID string
	Email  string
}

// TokenIssuer is the pluggable authentication capability: it issues and
// verifies opaque or signed tokens without the rest of the system knowing
// the format.
type TokenIssuer interface {
	IssuePair(ctx context.Context, userID, email string) (*TokenPair, error)
	VerifyAccess(tokenString string) (*TokenClaims, error)
	// Rotate validates a refresh token, revokes it and issues a new pair.
	Rotate(ctx context.Context, refreshToken string) (*TokenPair, error)
	// RevokeAll invalidates every refresh token issued to the user.
	RevokeAll(ctx context.Context, userID string) error
}

// RefreshTokenStore is the allow-list backing refresh tokens. Entries expire
// on their own after ttl; Revoke removes one token, RevokeUser removes all
// tokens of a user.
type RefreshTokenStore interface {
	Save(ctx context.Context, userID, tokenID string, ttl time.Duration) error
	Exists(ctx context.Context, userID, tokenID string) (bool, error)
	Revoke(ctx context.Context, userID, tokenID string) error
	RevokeUser(ctx context.Context, userID string) error
}
