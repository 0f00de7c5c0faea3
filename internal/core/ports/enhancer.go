package ports

import (
	"context"

	"github.com/devfolio/portfolio-system/internal/core/domain"
)

// Enhancer rewrites portfolio content. The production seam for an AI
// backend; the default implementation is a deterministic template.
type Enhancer interface {
	// EnhanceBio returns an improved bio for the portfolio.
	EnhanceBio(ctx context.Context, p *domain.Portfolio, extra map[string]any) (string, error)
	// EnhanceProject returns an improved description for one project.
	EnhanceProject(ctx context.Context, project domain.Project) (string, error)
}
