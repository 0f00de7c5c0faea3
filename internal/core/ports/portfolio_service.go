package ports

import (
	"context"

	"github.com/devfolio/portfolio-system/internal/core/domain"
)

// CreatePortfolioInput carries all data needed to create a portfolio.
// New portfolios always start private.
type CreatePortfolioInput struct {
	Name       string
	Title      string
	Bio        string
	Email      string
	Phone      string
	Location   string
	Website    string
	LinkedIn   string
	GitHub     string
	Experience []domain.Experience
	Education  []domain.Education
	Projects   []domain.Project
	Skills     []string
	Template   string
}

// UpdatePortfolioInput is a partial update: nil fields are left untouched.
type UpdatePortfolioInput struct {
	Name       *string
	Title      *string
	Bio        *string
	Email      *string
	Phone      *string
	Location   *string
	Website    *string
	LinkedIn   *string
	GitHub     *string
	Experience *[]domain.Experience
	Education  *[]domain.Education
	Projects   *[]domain.Project
	Skills     *[]string
	Template   *string
	IsPublic   *bool
}

// EnhanceInput selects which portfolio fields to rewrite and optional
// free-form context forwarded to the enhancer.
type EnhanceInput struct {
	PortfolioID string
	Fields      []string
	Context     map[string]any
}

// PortfolioService defines the use-case operations over portfolios. Every
// mutating operation takes the acting userID and enforces ownership.
type PortfolioService interface {
	Create(ctx context.Context, userID string, input CreatePortfolioInput) (*domain.Portfolio, error)
	// Get returns a portfolio. Private portfolios are only visible to their
	// owner; userID may be empty for anonymous callers.
	Get(ctx context.Context, id, userID string) (*domain.Portfolio, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Portfolio, error)
	Update(ctx context.Context, id, userID string, input UpdatePortfolioInput) (*domain.Portfolio, error)
	Delete(ctx context.Context, id, userID string) error
	ListPublic(ctx context.Context, limit, offset int) ([]*domain.Portfolio, error)
	Search(ctx context.Context, query string, limit, offset int) ([]*domain.Portfolio, error)
	Enhance(ctx context.Context, userID string, input EnhanceInput) (*domain.Portfolio, error)
}
