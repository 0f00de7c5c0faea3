package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/devfolio/portfolio-system/internal/core/domain"
	"github.com/devfolio/portfolio-system/internal/core/ports"
)

type stubIssuer struct {
	verifyFn func(tokenString string) (*ports.TokenClaims, error)
}

func (s *stubIssuer) IssuePair(context.Context, string, string) (*ports.TokenPair, error) {
	return nil, errors.New("unexpected IssuePair")
}

func (s *stubIssuer) VerifyAccess(tokenString string) (*ports.TokenClaims, error) {
	if s.verifyFn == nil {
		return nil, domain.ErrInvalidToken
	}
	return s.verifyFn(tokenString)
}

func (s *stubIssuer) Rotate(context.Context, string) (*ports.TokenPair, error) {
	return nil, errors.New("unexpected Rotate")
}

func (s *stubIssuer) RevokeAll(context.Context, string) error {
	return errors.New("unexpected RevokeAll")
}

func invoke(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	next := func(c echo.Context) error { return nil }
	return c, mw(next)(c)
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	mw := Auth(&stubIssuer{})

	_, err := invoke(t, mw, "")
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthRejectsMalformedHeader(t *testing.T) {
	mw := Auth(&stubIssuer{})

	for _, header := range []string{"tok-123", "Basic dXNlcjpwYXNz"} {
		_, err := invoke(t, mw, header)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %v", header, err)
		}
	}
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	mw := Auth(&stubIssuer{}) // default verify fails

	_, err := invoke(t, mw, "Bearer bad-token")
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthInjectsClaims(t *testing.T) {
	issuer := &stubIssuer{
		verifyFn: func(tokenString string) (*ports.TokenClaims, error) {
			if tokenString != "tok-123" {
				t.Fatalf("unexpected token %q", tokenString)
			}
			return &ports.TokenClaims{UserID: "u1", Email: "ada@example.com"}, nil
		},
	}
	mw := Auth(issuer)

	c, err := invoke(t, mw, "Bearer tok-123")
	if err != nil {
		t.Fatalf("auth: %v", err)
	}
	if got, _ := c.Get("user_id").(string); got != "u1" {
		t.Fatalf("user_id not injected, got %q", got)
	}
	if got, _ := c.Get("email").(string); got != "ada@example.com" {
		t.Fatalf("email not injected, got %q", got)
	}
}

func TestAuthAcceptsLowercaseBearer(t *testing.T) {
	issuer := &stubIssuer{
		verifyFn: func(string) (*ports.TokenClaims, error) {
			return &ports.TokenClaims{UserID: "u1"}, nil
		},
	}
	mw := Auth(issuer)

	if _, err := invoke(t, mw, "bearer tok-123"); err != nil {
		t.Fatalf("scheme should be case-insensitive: %v", err)
	}
}

func TestOptionalAuthLetsAnonymousThrough(t *testing.T) {
	mw := OptionalAuth(&stubIssuer{})

	c, err := invoke(t, mw, "")
	if err != nil {
		t.Fatalf("anonymous request should pass: %v", err)
	}
	if got, _ := c.Get("user_id").(string); got != "" {
		t.Fatalf("no identity expected, got %q", got)
	}
}

func TestOptionalAuthTreatsBadTokenAsAnonymous(t *testing.T) {
	mw := OptionalAuth(&stubIssuer{}) // default verify fails

	c, err := invoke(t, mw, "Bearer expired")
	if err != nil {
		t.Fatalf("bad token should not block the request: %v", err)
	}
	if got, _ := c.Get("user_id").(string); got != "" {
		t.Fatalf("no identity expected, got %q", got)
	}
}

func TestOptionalAuthInjectsValidClaims(t *testing.T) {
	issuer := &stubIssuer{
		verifyFn: func(string) (*ports.TokenClaims, error) {
			return &ports.TokenClaims{UserID: "u1"}, nil
		},
	}
	mw := OptionalAuth(issuer)

	c, err := invoke(t, mw, "Bearer tok-123")
	if err != nil {
		t.Fatalf("optional auth: %v", err)
	}
	if got, _ := c.Get("user_id").(string); got != "u1" {
		t.Fatalf("user_id not injected, got %q", got)
	}
}
