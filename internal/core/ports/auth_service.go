package ports

import (
	"context"

	"github.com/devfolio/portfolio-system/internal/core/domain"
)

// RegisterInput carries the data needed to create a new account.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// UpdateProfileInput is a partial update: nil fields are left untouched.
type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
	Avatar    *string
	Bio       *string
	Phone     *string
	Location  *string
	Website   *string
	LinkedIn  *string
	GitHub    *string
}

// TokenPair is the credential set returned by login and register. The
// refresh token travels in an HTTP-only cookie, never in the JSON body.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, *TokenPair, error)
	Login(ctx context.Context, email, password string) (*domain.User, *TokenPair, error)
	// Refresh rotates the refresh token and returns a fresh pair.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	// Logout revokes the user's refresh tokens. The client is considered
	// logged out even if revocation fails.
	Logout(ctx context.Context, userID string) error
}
