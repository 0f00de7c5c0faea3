// Package ai holds the content-enhancement backends. Only the deterministic
// StaticEnhancer is implemented; a model-backed enhancer would slot in behind
// the same port.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/devfolio/portfolio-system/internal/core/domain"
)

// StaticEnhancer produces templated copy from the portfolio's own data.
type StaticEnhancer struct{}

func NewStaticEnhancer() *StaticEnhancer {
	return &StaticEnhancer{}
}

func (e *StaticEnhancer) EnhanceBio(_ context.Context, p *domain.Portfolio, extra map[string]any) (string, error) {
	var b strings.Builder

	title := p.Title
	if title == "" {
		title = "professional"
	}
	fmt.Fprintf(&b, "%s is a %s", p.Name, title)

	if len(p.Skills) > 0 {
		fmt.Fprintf(&b, " with expertise in %s", joinNatural(p.Skills, 3))
	}
	b.WriteString(".")

	if n := len(p.Projects); n > 0 {
		fmt.Fprintf(&b, " Their work spans %d project(s), including %s.", n, p.Projects[0].Name)
	}
	if tone, ok := extra["tone"].(string); ok && tone != "" {
		fmt.Fprintf(&b, " (%s)", tone)
	}

	return b.String(), nil
}

func (e *StaticEnhancer) EnhanceProject(_ context.Context, project domain.Project) (string, error) {
	if len(project.TechStack) == 0 {
		return fmt.Sprintf("%s: %s", project.Name, project.Description), nil
	}
	return fmt.Sprintf("%s, built with %s. %s",
		project.Name, joinNatural(project.TechStack, 3), project.Description), nil
}

// joinNatural renders up to n items as "a, b and c".
func joinNatural(items []string, n int) string {
	if len(items) > n {
		items = items[:n]
	}
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}
