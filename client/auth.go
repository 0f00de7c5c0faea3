package client

import (
	"context"
	"sync"
)

// AuthState describes where the AuthManager is in its lifecycle.
type AuthState int

const (
	// StateUninitialized means Init has not run yet.
	StateUninitialized AuthState = iota
	// StateAnonymous means no user is signed in.
	StateAnonymous
	// StateAuthenticated means a user is signed in and User returns it.
	StateAuthenticated
)

func (s AuthState) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "uninitialized"
	}
}

// AuthManager tracks the signed-in user on top of a Client. It owns the
// session lifecycle: restoring it at startup, transitioning on
// login/register/logout, and notifying subscribers on every change.
// Concurrent calls are serialised; when responses race, the last one to
// complete wins.
type AuthManager struct {
	api *Client

	mu      sync.Mutex
	state   AuthState
	user    *User
	loading bool

	subMu   sync.Mutex
	subs    map[int]func(AuthState, *User)
	nextSub int
}

func NewAuthManager(api *Client) *AuthManager {
	return &AuthManager{
		api:   api,
		state: StateUninitialized,
		subs:  map[int]func(AuthState, *User){},
	}
}

// Subscribe registers fn to run after every state change. The returned
// function removes the subscription.
func (m *AuthManager) Subscribe(fn func(AuthState, *User)) (unsubscribe func()) {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	return func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		delete(m.subs, id)
	}
}

func (m *AuthManager) notify() {
	state, user := m.State(), m.User()
	m.subMu.Lock()
	fns := make([]func(AuthState, *User), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.subMu.Unlock()
	for _, fn := range fns {
		fn(state, user)
	}
}

// State returns the current lifecycle state.
func (m *AuthManager) State() AuthState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// User returns a copy of the signed-in user, or nil when anonymous.
func (m *AuthManager) User() *User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// Loading reports whether an auth operation is in flight.
func (m *AuthManager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

func (m *AuthManager) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}

func (m *AuthManager) setAuthenticated(u User) {
	m.mu.Lock()
	m.state = StateAuthenticated
	m.user = &u
	m.mu.Unlock()
	m.notify()
}

func (m *AuthManager) setAnonymous() {
	m.mu.Lock()
	m.state = StateAnonymous
	m.user = nil
	m.mu.Unlock()
	m.notify()
}

// Init restores the session from the stored access token. With no token
// the manager settles anonymous immediately. With a token it fetches the
// profile; if that is rejected it refreshes the token exactly once and
// retries, dropping the token and settling anonymous if the retry fails
// too. Init never returns an error for an expired session, only for
// broken stores.
func (m *AuthManager) Init(ctx context.Context) error {
	m.setLoading(true)
	defer m.setLoading(false)

	token, err := m.api.tokens.Load()
	if err != nil {
		m.setAnonymous()
		return err
	}
	if token == "" {
		m.setAnonymous()
		return nil
	}

	user, err := m.api.Profile(ctx)
	if err == nil {
		m.setAuthenticated(*user)
		return nil
	}

	if _, rerr := m.api.RefreshToken(ctx); rerr == nil {
		if user, err = m.api.Profile(ctx); err == nil {
			m.setAuthenticated(*user)
			return nil
		}
	}

	_ = m.api.tokens.Clear()
	m.setAnonymous()
	return nil
}

// Login signs in and transitions to authenticated. On failure the state
// becomes anonymous and the error is returned for display.
func (m *AuthManager) Login(ctx context.Context, email, password string) error {
	m.setLoading(true)
	defer m.setLoading(false)

	result, err := m.api.Login(ctx, email, password)
	if err != nil {
		m.setAnonymous()
		return err
	}
	m.setAuthenticated(result.User)
	return nil
}

// Register creates an account and signs in.
func (m *AuthManager) Register(ctx context.Context, input RegisterInput) error {
	m.setLoading(true)
	defer m.setLoading(false)

	result, err := m.api.Register(ctx, input)
	if err != nil {
		m.setAnonymous()
		return err
	}
	m.setAuthenticated(result.User)
	return nil
}

// Logout always ends in the anonymous state, even when the server-side
// revocation fails.
func (m *AuthManager) Logout(ctx context.Context) error {
	m.setLoading(true)
	defer m.setLoading(false)

	err := m.api.Logout(ctx)
	m.setAnonymous()
	return err
}

// UpdateProfile pushes a partial profile update and replaces the cached
// user with the server's response. It is a no-op when nobody is signed in.
func (m *AuthManager) UpdateProfile(ctx context.Context, update ProfileUpdate) error {
	if m.State() != StateAuthenticated {
		return nil
	}

	m.setLoading(true)
	defer m.setLoading(false)

	user, err := m.api.UpdateProfile(ctx, update)
	if err != nil {
		return err
	}
	m.setAuthenticated(*user)
	return nil
}
