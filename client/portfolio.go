package client

import (
	"context"
	"sync"
)

// PortfolioCache keeps a local, ordered copy of the user's portfolios plus
// the portfolio currently being viewed or edited. Every mutation is
// confirmed by the server before the cache changes, so the cache never
// holds state the backend has not acknowledged. Failures are recorded via
// Err and returned to the caller.
type PortfolioCache struct {
	api *Client

	mu         sync.Mutex
	portfolios []Portfolio
	current    *Portfolio
	loading    bool
	lastErr    error
}

func NewPortfolioCache(api *Client) *PortfolioCache {
	return &PortfolioCache{api: api}
}

// Portfolios returns a copy of the cached list in creation order.
func (c *PortfolioCache) Portfolios() []Portfolio {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Portfolio, len(c.portfolios))
	copy(out, c.portfolios)
	return out
}

// Current returns a copy of the currently selected portfolio, or nil.
func (c *PortfolioCache) Current() *Portfolio {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	p := *c.current
	return &p
}

// Loading reports whether a cache operation is in flight.
func (c *PortfolioCache) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the error recorded by the most recent operation, or nil.
func (c *PortfolioCache) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *PortfolioCache) begin() {
	c.mu.Lock()
	c.loading = true
	c.lastErr = nil
	c.mu.Unlock()
}

func (c *PortfolioCache) finish(err error) {
	c.mu.Lock()
	c.loading = false
	c.lastErr = err
	c.mu.Unlock()
}

// FetchUserPortfolios reloads the full list from the server. On failure
// the cache is emptied rather than left stale.
func (c *PortfolioCache) FetchUserPortfolios(ctx context.Context) ([]Portfolio, error) {
	c.begin()

	list, err := c.api.UserPortfolios(ctx)
	if err != nil {
		c.mu.Lock()
		c.portfolios = nil
		c.mu.Unlock()
		c.finish(err)
		return nil, err
	}

	c.mu.Lock()
	c.portfolios = list
	c.mu.Unlock()
	c.finish(nil)
	return c.Portfolios(), nil
}

// FetchPortfolio loads a single portfolio and makes it current. The list
// is untouched.
func (c *PortfolioCache) FetchPortfolio(ctx context.Context, id string) (*Portfolio, error) {
	c.begin()

	p, err := c.api.Portfolio(ctx, id)
	if err != nil {
		c.finish(err)
		return nil, err
	}

	c.mu.Lock()
	cp := *p
	c.current = &cp
	c.mu.Unlock()
	c.finish(nil)
	return p, nil
}

// Create persists a new portfolio and appends the server's copy to the end
// of the list, preserving creation order.
func (c *PortfolioCache) Create(ctx context.Context, input CreatePortfolioInput) (*Portfolio, error) {
	c.begin()

	p, err := c.api.CreatePortfolio(ctx, input)
	if err != nil {
		c.finish(err)
		return nil, err
	}

	c.mu.Lock()
	c.portfolios = append(c.portfolios, *p)
	c.mu.Unlock()
	c.finish(nil)
	return p, nil
}

// Update pushes a partial update and replaces the cached entry in place,
// keeping its position. When the id is not cached the list is left alone;
// the updated portfolio is still returned and made current when it was.
func (c *PortfolioCache) Update(ctx context.Context, id string, input UpdatePortfolioInput) (*Portfolio, error) {
	c.begin()

	p, err := c.api.UpdatePortfolio(ctx, id, input)
	if err != nil {
		c.finish(err)
		return nil, err
	}

	c.mu.Lock()
	for i := range c.portfolios {
		if c.portfolios[i].ID == p.ID {
			c.portfolios[i] = *p
			break
		}
	}
	if c.current != nil && c.current.ID == p.ID {
		cp := *p
		c.current = &cp
	}
	c.mu.Unlock()
	c.finish(nil)
	return p, nil
}

// Delete removes the portfolio server-side, then drops it from the list
// and clears current if it pointed at the deleted entry.
func (c *PortfolioCache) Delete(ctx context.Context, id string) error {
	c.begin()

	if err := c.api.DeletePortfolio(ctx, id); err != nil {
		c.finish(err)
		return err
	}

	c.mu.Lock()
	for i := range c.portfolios {
		if c.portfolios[i].ID == id {
			c.portfolios = append(c.portfolios[:i], c.portfolios[i+1:]...)
			break
		}
	}
	if c.current != nil && c.current.ID == id {
		c.current = nil
	}
	c.mu.Unlock()
	c.finish(nil)
	return nil
}

// Enhance runs the backend's field enhancement and folds the result into
// the cache the same way Update does.
func (c *PortfolioCache) Enhance(ctx context.Context, input EnhanceInput) (*Portfolio, error) {
	c.begin()

	p, err := c.api.EnhancePortfolio(ctx, input)
	if err != nil {
		c.finish(err)
		return nil, err
	}

	c.mu.Lock()
	for i := range c.portfolios {
		if c.portfolios[i].ID == p.ID {
			c.portfolios[i] = *p
			break
		}
	}
	if c.current != nil && c.current.ID == p.ID {
		cp := *p
		c.current = &cp
	}
	c.mu.Unlock()
	c.finish(nil)
	return p, nil
}

// Clear empties the cache, e.g. after logout.
func (c *PortfolioCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.portfolios = nil
	c.current = nil
	c.lastErr = nil
}
