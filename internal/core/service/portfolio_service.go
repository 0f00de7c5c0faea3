package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/devfolio/portfolio-system/internal/core/domain"
	"github.com/devfolio/portfolio-system/internal/core/ports"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// PortfolioService implements portfolio use cases with ownership enforcement.
type PortfolioService struct {
	repo     ports.PortfolioRepository
	enhancer ports.Enhancer
	logger   zerolog.Logger
}

func NewPortfolioService(repo ports.PortfolioRepository, enhancer ports.Enhancer, logger zerolog.Logger) *PortfolioService {
	return &PortfolioService{repo: repo, enhancer: enhancer, logger: logger}
}

func (s *PortfolioService) Create(ctx context.Context, userID string, input ports.CreatePortfolioInput) (*domain.Portfolio, error) {
	now := time.Now().UTC()
	p := &domain.Portfolio{
		UserID:     userID,
		Name:       input.Name,
		Title:      input.Title,
		Bio:        input.Bio,
		Email:      input.Email,
		Phone:      input.Phone,
		Location:   input.Location,
		Website:    input.Website,
		LinkedIn:   input.LinkedIn,
		GitHub:     input.GitHub,
		Experience: input.Experience,
		Education:  input.Education,
		Projects:   input.Projects,
		Skills:     input.Skills,
		Template:   input.Template,
		IsPublic:   false, // new portfolios start private
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to create portfolio")
		return nil, err
	}

	s.logger.Info().Str("portfolio_id", created.ID).Str("user_id", userID).Msg("portfolio created")
	return created, nil
}

// Get returns a portfolio. Anonymous callers and non-owners only see public
// portfolios; the not-found error is reused so private ids are not probeable.
func (s *PortfolioService) Get(ctx context.Context, id, userID string) (*domain.Portfolio, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsPublic && p.UserID != userID {
		return nil, domain.ErrPortfolioNotFound
	}
	return p, nil
}

func (s *PortfolioService) ListByUser(ctx context.Context, userID string) ([]*domain.Portfolio, error) {
	return s.repo.FindByUserID(ctx, userID)
}

func (s *PortfolioService) Update(ctx context.Context, id, userID string, input ports.UpdatePortfolioInput) (*domain.Portfolio, error) {
	existing, err := s.ownedPortfolio(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	applyUpdate(existing, input)
	existing.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, existing)
}

func (s *PortfolioService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.ownedPortfolio(ctx, id, userID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("portfolio_id", id).Str("user_id", userID).Msg("portfolio deleted")
	return nil
}

func (s *PortfolioService) ListPublic(ctx context.Context, limit, offset int) ([]*domain.Portfolio, error) {
	return s.repo.ListPublic(ctx, ports.PublicFilter{
		Limit:  clampLimit(limit),
		Offset: max(offset, 0),
	})
}

func (s *PortfolioService) Search(ctx context.Context, query string, limit, offset int) ([]*domain.Portfolio, error) {
	return s.repo.ListPublic(ctx, ports.PublicFilter{
		Query:  query,
		Limit:  clampLimit(limit),
		Offset: max(offset, 0),
	})
}

// Enhance rewrites the requested fields through the Enhancer capability and
// persists the result. An empty field list enhances the bio.
func (s *PortfolioService) Enhance(ctx context.Context, userID string, input ports.EnhanceInput) (*domain.Portfolio, error) {
	p, err := s.ownedPortfolio(ctx, input.PortfolioID, userID)
	if err != nil {
		return nil, err
	}

	fields := input.Fields
	if len(fields) == 0 {
		fields = []string{"bio"}
	}

	for _, field := range fields {
		switch field {
		case "bio":
			bio, err := s.enhancer.EnhanceBio(ctx, p, input.Context)
			if err != nil {
				return nil, err
			}
			p.Bio = bio
		case "projects":
			for i, project := range p.Projects {
				if project.Name == "" {
					continue
				}
				desc, err := s.enhancer.EnhanceProject(ctx, project)
				if err != nil {
					s.logger.Warn().Err(err).Str("project", project.Name).Msg("project enhancement skipped")
					continue
				}
				p.Projects[i].Description = desc
			}
		default:
			// Unknown fields are ignored.
		}
	}

	p.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, p)
}

// ownedPortfolio loads a portfolio and verifies the caller owns it.
func (s *PortfolioService) ownedPortfolio(ctx context.Context, id, userID string) (*domain.Portfolio, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, domain.ErrNotOwner
	}
	return p, nil
}

func applyUpdate(p *domain.Portfolio, input ports.UpdatePortfolioInput) {
	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Title != nil {
		p.Title = *input.Title
	}
	if input.Bio != nil {
		p.Bio = *input.Bio
	}
	if input.Email != nil {
		p.Email = *input.Email
	}
	if input.Phone != nil {
		p.Phone = *input.Phone
	}
	if input.Location != nil {
		p.Location = *input.Location
	}
	if input.Website != nil {
		p.Website = *input.Website
	}
	if input.LinkedIn != nil {
		p.LinkedIn = *input.LinkedIn
	}
	if input.GitHub != nil {
		p.GitHub = *input.GitHub
	}
	if input.Experience != nil {
		p.Experience = *input.Experience
	}
	if input.Education != nil {
		p.Education = *input.Education
	}
	if input.Projects != nil {
		p.Projects = *input.Projects
	}
	if input.Skills != nil {
		p.Skills = *input.Skills
	}
	if input.Template != nil {
		p.Template = *input.Template
	}
	if input.IsPublic != nil {
		p.IsPublic = *input.IsPublic
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultPageLimit
	}
	if limit > maxPageLimit {
		return maxPageLimit
	}
	return limit
}
