package ports

import (
	"context"

	"github.com/devfolio/portfolio-system/internal/core/domain"
)

// PublicFilter carries the query parameters for public listing and search.
type PublicFilter struct {
	Query  string // optional: case-insensitive match on name, title, bio or skills
	Limit  int    // capped at 100 by the service
	Offset int    // 0-based
}

// PortfolioRepository defines the persistence capability for portfolios.
// Implementations must return domain.ErrPortfolioNotFound for missing ids.
type PortfolioRepository interface {
	Create(ctx context.Context, p *domain.Portfolio) (*domain.Portfolio, error)
	FindByID(ctx context.Context, id string) (*domain.Portfolio, error)
	// FindByUserID returns the user's portfolios ordered by creation time.
	FindByUserID(ctx context.Context, userID string) ([]*domain.Portfolio, error)
	Update(ctx context.Context, p *domain.Portfolio) (*domain.Portfolio, error)
	Delete(ctx context.Context, id string) error
	// ListPublic returns public portfolios, newest first.
	ListPublic(ctx context.Context, filter PublicFilter) ([]*domain.Portfolio, error)
}
