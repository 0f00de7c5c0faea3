package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/devfolio/portfolio-system/internal/core/domain"
	"github.com/devfolio/portfolio-system/internal/core/ports"
)

type PortfolioRepository struct {
	mu         sync.RWMutex
	portfolios map[string]*domain.Portfolio
	order      []string // creation order of ids
}

func NewPortfolioRepository() *PortfolioRepository {
	return &PortfolioRepository{portfolios: make(map[string]*domain.Portfolio)}
}

func (r *PortfolioRepository) Create(_ context.Context, p *domain.Portfolio) (*domain.Portfolio, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := clonePortfolio(p)
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	r.portfolios[created.ID] = clonePortfolio(created)
	r.order = append(r.order, created.ID)
	return created, nil
}

func (r *PortfolioRepository) FindByID(_ context.Context, id string) (*domain.Portfolio, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.portfolios[id]
	if !ok {
		return nil, domain.ErrPortfolioNotFound
	}
	return clonePortfolio(p), nil
}

func (r *PortfolioRepository) FindByUserID(_ context.Context, userID string) ([]*domain.Portfolio, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Portfolio, 0)
	for _, id := range r.order {
		if p, ok := r.portfolios[id]; ok && p.UserID == userID {
			out = append(out, clonePortfolio(p))
		}
	}
	return out, nil
}

func (r *PortfolioRepository) Update(_ context.Context, p *domain.Portfolio) (*domain.Portfolio, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.portfolios[p.ID]; !ok {
		return nil, domain.ErrPortfolioNotFound
	}
	r.portfolios[p.ID] = clonePortfolio(p)
	return clonePortfolio(p), nil
}

func (r *PortfolioRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.portfolios[id]; !ok {
		return domain.ErrPortfolioNotFound
	}
	delete(r.portfolios, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *PortfolioRepository) ListPublic(_ context.Context, filter ports.PublicFilter) ([]*domain.Portfolio, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*domain.Portfolio, 0)
	for _, id := range r.order {
		p, ok := r.portfolios[id]
		if !ok || !p.IsPublic {
			continue
		}
		if filter.Query != "" && !matches(p, filter.Query) {
			continue
		}
		matched = append(matched, clonePortfolio(p))
	}

	// newest first, mirroring the mongo backend
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if filter.Offset >= len(matched) {
		return []*domain.Portfolio{}, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func matches(p *domain.Portfolio, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Bio), q) {
		return true
	}
	for _, skill := range p.Skills {
		if strings.Contains(strings.ToLower(skill), q) {
			return true
		}
	}
	return false
}

func clonePortfolio(p *domain.Portfolio) *domain.Portfolio {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Experience = append([]domain.Experience(nil), p.Experience...)
	clone.Education = append([]domain.Education(nil), p.Education...)
	clone.Projects = append([]domain.Project(nil), p.Projects...)
	clone.Skills = append([]string(nil), p.Skills...)
	return &clone
}
