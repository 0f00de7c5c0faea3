package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultRequestTimeout = 30 * time.Second

// Client talks to the devfolio REST API. All responses are wrapped in the
// API's envelope: {"data": ...} on success, {"error": "..."} on failure.
// The access token is read from and written to the configured TokenStore;
// the refresh token travels in an HTTP-only cookie handled by the
// underlying http.Client's cookie jar.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. Supply one with a
// cookie jar if token refresh should keep working.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTokenStore replaces the default in-memory token store.
func WithTokenStore(store TokenStore) Option {
	return func(c *Client) { c.tokens = store }
}

// New builds a Client for the given base URL, e.g.
// "http://localhost:8080/api/v1".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  NewMemoryTokenStore(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		jar, _ := cookiejar.New(nil)
		c.http = &http.Client{Timeout: defaultRequestTimeout, Jar: jar}
	}
	return c
}

// envelope mirrors the API's response wrapper.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

// do performs a request against path, marshalling body (when non-nil) and
// unmarshalling the envelope's data into out (when non-nil). Transport
// failures are returned wrapped; non-2xx statuses become a *RequestError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf *bytes.Buffer
	if body != nil {
		buf = &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	var reader *bytes.Buffer
	if buf != nil {
		reader = buf
	} else {
		reader = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if token, terr := c.tokens.Load(); terr == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Error
		if decodeErr != nil || msg == "" {
			msg = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
		return &RequestError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if decodeErr != nil {
		return &RequestError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("HTTP %d: malformed response body", resp.StatusCode),
		}
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &RequestError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("HTTP %d: malformed response body", resp.StatusCode),
		}
	}
	return nil
}

// Login authenticates with email and password. On success the access token
// is persisted to the token store.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" {
		return nil, &ValidationError{Field: "email"}
	}
	if password == "" {
		return nil, &ValidationError{Field: "password"}
	}

	var result LoginResult
	payload := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", payload, &result); err != nil {
		return nil, err
	}
	if err := c.tokens.Save(result.AccessToken); err != nil {
		return nil, fmt.Errorf("persist token: %w", err)
	}
	return &result, nil
}

// Register creates a new account and, like Login, persists the returned
// access token.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*LoginResult, error) {
	switch {
	case input.Email == "":
		return nil, &ValidationError{Field: "email"}
	case input.Password == "":
		return nil, &ValidationError{Field: "password"}
	case input.FirstName == "":
		return nil, &ValidationError{Field: "first_name"}
	case input.LastName == "":
		return nil, &ValidationError{Field: "last_name"}
	}

	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/register", input, &result); err != nil {
		return nil, err
	}
	if err := c.tokens.Save(result.AccessToken); err != nil {
		return nil, fmt.Errorf("persist token: %w", err)
	}
	return &result, nil
}

// Logout revokes the session server-side. The local token is cleared even
// when the request fails, so a second Logout is harmless.
func (c *Client) Logout(ctx context.Context) error {
	defer func() { _ = c.tokens.Clear() }()
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// RefreshToken exchanges the refresh cookie for a fresh access token and
// persists it.
func (c *Client) RefreshToken(ctx context.Context) (string, error) {
	var result struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", nil, &result); err != nil {
		return "", err
	}
	if err := c.tokens.Save(result.AccessToken); err != nil {
		return "", fmt.Errorf("persist token: %w", err)
	}
	return result.AccessToken, nil
}

// Profile fetches the authenticated user.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies a partial update to the authenticated user.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPut, "/auth/profile", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword replaces the account password. All refresh tokens are
// revoked server-side, so the caller must log in again afterwards.
func (c *Client) ChangePassword(ctx context.Context, current, updated string) error {
	payload := map[string]string{"current_password": current, "new_password": updated}
	return c.do(ctx, http.MethodPut, "/auth/change-password", payload, nil)
}

// CreatePortfolio creates a portfolio owned by the authenticated user.
func (c *Client) CreatePortfolio(ctx context.Context, input CreatePortfolioInput) (*Portfolio, error) {
	if input.Name == "" {
		return nil, &ValidationError{Field: "name"}
	}
	if input.Title == "" {
		return nil, &ValidationError{Field: "title"}
	}

	var p Portfolio
	if err := c.do(ctx, http.MethodPost, "/portfolios", input, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Portfolio fetches a single portfolio by id.
func (c *Client) Portfolio(ctx context.Context, id string) (*Portfolio, error) {
	var p Portfolio
	if err := c.do(ctx, http.MethodGet, "/portfolios/"+url.PathEscape(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UserPortfolios lists the authenticated user's portfolios in creation order.
func (c *Client) UserPortfolios(ctx context.Context) ([]Portfolio, error) {
	var list []Portfolio
	if err := c.do(ctx, http.MethodGet, "/portfolios/user", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// UpdatePortfolio applies a partial update to an owned portfolio.
func (c *Client) UpdatePortfolio(ctx context.Context, id string, input UpdatePortfolioInput) (*Portfolio, error) {
	var p Portfolio
	if err := c.do(ctx, http.MethodPut, "/portfolios/"+url.PathEscape(id), input, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeletePortfolio removes an owned portfolio.
func (c *Client) DeletePortfolio(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/portfolios/"+url.PathEscape(id), nil, nil)
}

// PublicPortfolios lists publicly visible portfolios, newest first.
func (c *Client) PublicPortfolios(ctx context.Context, limit, offset int) ([]Portfolio, error) {
	var list []Portfolio
	path := "/portfolios/public?" + pageQuery("", limit, offset)
	if err := c.do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SearchPortfolios searches public portfolios by name, title, bio or skills.
func (c *Client) SearchPortfolios(ctx context.Context, query string, limit, offset int) ([]Portfolio, error) {
	var list []Portfolio
	path := "/portfolios/search?" + pageQuery(query, limit, offset)
	if err := c.do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// EnhancePortfolio asks the backend to rewrite selected portfolio fields
// and returns the updated portfolio.
func (c *Client) EnhancePortfolio(ctx context.Context, input EnhanceInput) (*Portfolio, error) {
	if input.PortfolioID == "" {
		return nil, &ValidationError{Field: "portfolio_id"}
	}

	var p Portfolio
	if err := c.do(ctx, http.MethodPost, "/portfolios/enhance", input, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// HealthCheck probes the API's liveness endpoint.
func (c *Client) HealthCheck(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func pageQuery(q string, limit, offset int) string {
	values := url.Values{}
	if q != "" {
		values.Set("q", q)
	}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		values.Set("offset", strconv.Itoa(offset))
	}
	return values.Encode()
}
