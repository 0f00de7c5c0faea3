package ports

import (
	"context"

	"github.com/devfolio/portfolio-system/internal/core/domain"
)

// UserRepository defines the persistence capability for user accounts.
// Implementations must return domain.ErrUserNotFound / domain.ErrEmailTaken
// so the layers above can map them without knowing the backend.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	// TouchLastLogin records a successful login timestamp. Best-effort:
	// callers may log and ignore the error.
	TouchLastLogin(ctx context.Context, id string) error
}
