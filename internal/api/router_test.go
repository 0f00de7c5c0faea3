package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/devfolio/portfolio-system/internal/api/handler"
	"github.com/devfolio/portfolio-system/internal/core/service"
	"github.com/devfolio/portfolio-system/internal/infrastructure/ai"
	"github.com/devfolio/portfolio-system/internal/infrastructure/db/memory"
)

// The prometheus middleware registers collectors in the default registry, so
// the router is built once and shared by every test in this package.
var (
	routerOnce sync.Once
	testServer *httptest.Server
)

func apiServer(t *testing.T) *httptest.Server {
	t.Helper()
	routerOnce.Do(func() {
		tokens := service.NewTokenService("integration-secret", time.Minute, time.Hour, memory.NewRefreshTokenStore())
		authService := service.NewAuthService(memory.NewUserRepository(), tokens, zerolog.Nop())
		portfolioService := service.NewPortfolioService(memory.NewPortfolioRepository(), ai.NewStaticEnhancer(), zerolog.Nop())

		e := NewRouter(RouterDeps{
			Auth:        handler.NewAuthHandler(authService, handler.CookieSettings{MaxAge: time.Hour}, zerolog.Nop()),
			Portfolios:  handler.NewPortfolioHandler(portfolioService),
			Health:      handler.NewHealthHandler(),
			Readiness:   handler.NewReadinessHandler(nil, nil),
			Tokens:      tokens,
			FrontendURL: "http://localhost:3000",
			Logger:      zerolog.Nop(),
		})
		testServer = httptest.NewServer(e)
	})
	return testServer
}

type apiClient struct {
	t     *testing.T
	base  string
	http  *http.Client
	token string
}

func newAPIClient(t *testing.T) *apiClient {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &apiClient{t: t, base: apiServer(t).URL + "/api/v1", http: &http.Client{Jar: jar}}
}

func (c *apiClient) do(method, path string, body any) (int, map[string]json.RawMessage) {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			c.t.Fatalf("encode: %v", err)
		}
	}
	req, err := http.NewRequest(method, c.base+path, &buf)
	if err != nil {
		c.t.Fatalf("request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var parsed map[string]json.RawMessage
	_ = json.NewDecoder(resp.Body).Decode(&parsed)
	return resp.StatusCode, parsed
}

func (c *apiClient) register(email string) {
	c.t.Helper()
	status, body := c.do(http.MethodPost, "/auth/register", map[string]string{
		"email": email, "password": "secret123", "first_name": "Ada", "last_name": "Lovelace",
	})
	if status != http.StatusCreated {
		c.t.Fatalf("register %s: status %d body %v", email, status, body)
	}
	var data struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body["data"], &data); err != nil || data.AccessToken == "" {
		c.t.Fatalf("register %s: no access token (%v)", email, err)
	}
	c.token = data.AccessToken
}

func errorMessage(t *testing.T, body map[string]json.RawMessage) string {
	t.Helper()
	var msg string
	if raw, ok := body["error"]; ok {
		_ = json.Unmarshal(raw, &msg)
	}
	return msg
}

func TestHealthEndpoint(t *testing.T) {
	c := newAPIClient(t)
	status, body := c.do(http.MethodGet, "/health", nil)
	if status != http.StatusOK {
		t.Fatalf("health: status %d", status)
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("health body not enveloped: %v", body)
	}
}

func TestReadinessSkipsAbsentBackends(t *testing.T) {
	c := newAPIClient(t)
	status, body := c.do(http.MethodGet, "/health/ready", nil)
	if status != http.StatusOK {
		t.Fatalf("ready: status %d body %v", status, body)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	c := newAPIClient(t)
	c.register("dupe@example.com")

	status, body := c.do(http.MethodPost, "/auth/register", map[string]string{
		"email": "dupe@example.com", "password": "secret123", "first_name": "Ada", "last_name": "Lovelace",
	})
	if status != http.StatusConflict {
		t.Fatalf("expected 409, got %d", status)
	}
	if msg := errorMessage(t, body); msg != "email already registered" {
		t.Fatalf("unexpected error message %q", msg)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	c := newAPIClient(t)
	c.register("wrongpass@example.com")
	c.token = ""

	status, body := c.do(http.MethodPost, "/auth/login", map[string]string{
		"email": "wrongpass@example.com", "password": "not-the-one",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
	if msg := errorMessage(t, body); msg != "invalid credentials" {
		t.Fatalf("unexpected error message %q", msg)
	}
}

func TestProfileRequiresToken(t *testing.T) {
	c := newAPIClient(t)
	if status, _ := c.do(http.MethodGet, "/auth/profile", nil); status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", status)
	}

	c.register("profile@example.com")
	status, body := c.do(http.MethodGet, "/auth/profile", nil)
	if status != http.StatusOK {
		t.Fatalf("profile with token: status %d body %v", status, body)
	}
	var user struct {
		Email        string `json:"email"`
		PasswordHash string `json:"password_hash"`
	}
	if err := json.Unmarshal(body["data"], &user); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	if user.Email != "profile@example.com" {
		t.Fatalf("unexpected user %+v", user)
	}
	if user.PasswordHash != "" {
		t.Fatal("password hash leaked into the response")
	}
}

func TestRefreshRotation(t *testing.T) {
	c := newAPIClient(t)
	c.register("refresh@example.com")

	// The refresh cookie from register is in the jar; rotating once works.
	status, body := c.do(http.MethodPost, "/auth/refresh", nil)
	if status != http.StatusOK {
		t.Fatalf("refresh: status %d body %v", status, body)
	}
	var data struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body["data"], &data); err != nil || data.AccessToken == "" {
		t.Fatalf("no rotated access token: %v", err)
	}

	// The new access token works on protected routes.
	c.token = data.AccessToken
	if status, _ := c.do(http.MethodGet, "/auth/profile", nil); status != http.StatusOK {
		t.Fatalf("rotated token rejected: %d", status)
	}
}

func TestLogoutRevokesRefresh(t *testing.T) {
	c := newAPIClient(t)
	c.register("logout@example.com")

	if status, _ := c.do(http.MethodPost, "/auth/logout", nil); status != http.StatusOK {
		t.Fatal("logout should always answer 200")
	}

	// The cookie was cleared and the allow-list entry revoked.
	if status, _ := c.do(http.MethodPost, "/auth/refresh", nil); status != http.StatusUnauthorized {
		t.Fatal("refresh should fail after logout")
	}
}

func TestPortfolioLifecycle(t *testing.T) {
	c := newAPIClient(t)
	c.register("lifecycle@example.com")

	// Create three, list them in creation order.
	var ids []string
	for _, name := range []string{"first", "second", "third"} {
		status, body := c.do(http.MethodPost, "/portfolios", map[string]string{"name": name, "title": "dev"})
		if status != http.StatusCreated {
			t.Fatalf("create %s: status %d body %v", name, status, body)
		}
		var p struct {
			ID       string `json:"id"`
			IsPublic bool   `json:"is_public"`
		}
		if err := json.Unmarshal(body["data"], &p); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if p.IsPublic {
			t.Fatal("new portfolio must start private")
		}
		ids = append(ids, p.ID)
	}

	status, body := c.do(http.MethodGet, "/portfolios/user", nil)
	if status != http.StatusOK {
		t.Fatalf("list: status %d", status)
	}
	var list []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(body["data"], &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 3 || list[0].Name != "first" || list[2].Name != "third" {
		t.Fatalf("unexpected list %+v", list)
	}

	// Delete the middle one; exactly the other two remain.
	if status, _ := c.do(http.MethodDelete, "/portfolios/"+ids[1], nil); status != http.StatusOK {
		t.Fatalf("delete: status %d", status)
	}
	_, body = c.do(http.MethodGet, "/portfolios/user", nil)
	list = nil
	_ = json.Unmarshal(body["data"], &list)
	if len(list) != 2 || list[0].Name != "first" || list[1].Name != "second" && list[1].Name != "third" {
		t.Fatalf("unexpected survivors %+v", list)
	}
	if list[1].Name != "third" {
		t.Fatalf("wrong portfolio deleted: %+v", list)
	}
}

func TestPrivatePortfolioHiddenFromOthers(t *testing.T) {
	owner := newAPIClient(t)
	owner.register("owner@example.com")

	status, body := owner.do(http.MethodPost, "/portfolios", map[string]string{"name": "secret cv", "title": "dev"})
	if status != http.StatusCreated {
		t.Fatalf("create: status %d", status)
	}
	var p struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body["data"], &p)

	// Owner sees it.
	if status, _ := owner.do(http.MethodGet, "/portfolios/"+p.ID, nil); status != http.StatusOK {
		t.Fatalf("owner read: status %d", status)
	}

	// Anonymous and other users get the same 404 as a missing id.
	anon := newAPIClient(t)
	if status, _ := anon.do(http.MethodGet, "/portfolios/"+p.ID, nil); status != http.StatusNotFound {
		t.Fatalf("anonymous read: expected 404, got %d", status)
	}

	other := newAPIClient(t)
	other.register("other@example.com")
	if status, _ := other.do(http.MethodGet, "/portfolios/"+p.ID, nil); status != http.StatusNotFound {
		t.Fatalf("non-owner read: expected 404, got %d", status)
	}
	if status, _ := other.do(http.MethodDelete, "/portfolios/"+p.ID, nil); status != http.StatusForbidden {
		t.Fatalf("non-owner delete: expected 403, got %d", status)
	}
}

func TestPublishAndSearch(t *testing.T) {
	c := newAPIClient(t)
	c.register("publisher@example.com")

	status, body := c.do(http.MethodPost, "/portfolios", map[string]any{
		"name": "findable cv", "title": "distributed systems engineer", "skills": []string{"Go", "Kafka"},
	})
	if status != http.StatusCreated {
		t.Fatalf("create: status %d", status)
	}
	var p struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body["data"], &p)

	if status, _ = c.do(http.MethodPut, "/portfolios/"+p.ID, map[string]any{"is_public": true}); status != http.StatusOK {
		t.Fatalf("publish: status %d", status)
	}

	// Now visible anonymously, both directly and via search.
	anon := newAPIClient(t)
	if status, _ := anon.do(http.MethodGet, "/portfolios/"+p.ID, nil); status != http.StatusOK {
		t.Fatalf("public read: status %d", status)
	}

	status, body = anon.do(http.MethodGet, "/portfolios/search?q=kafka", nil)
	if status != http.StatusOK {
		t.Fatalf("search: status %d", status)
	}
	var results []struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body["data"], &results)
	found := false
	for _, r := range results {
		if r.ID == p.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("published portfolio not in search results: %v", results)
	}
}

func TestEnhanceEndpoint(t *testing.T) {
	c := newAPIClient(t)
	c.register("enhance@example.com")

	status, body := c.do(http.MethodPost, "/portfolios", map[string]any{
		"name": "Ada Lovelace", "title": "engineer", "skills": []string{"Go"},
	})
	if status != http.StatusCreated {
		t.Fatalf("create: status %d", status)
	}
	var p struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body["data"], &p)

	status, body = c.do(http.MethodPost, "/portfolios/enhance", map[string]any{"portfolio_id": p.ID})
	if status != http.StatusOK {
		t.Fatalf("enhance: status %d body %v", status, body)
	}
	var enhanced struct {
		Bio string `json:"bio"`
	}
	if err := json.Unmarshal(body["data"], &enhanced); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if enhanced.Bio == "" {
		t.Fatal("bio should be filled in")
	}
}

func TestUnknownRouteEnvelopedError(t *testing.T) {
	c := newAPIClient(t)
	status, body := c.do(http.MethodGet, "/nope", nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
	if errorMessage(t, body) == "" {
		t.Fatalf("error not enveloped: %v", body)
	}
}
