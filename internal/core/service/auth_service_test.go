package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/devfolio/portfolio-system/internal/core/domain"
	"github.com/devfolio/portfolio-system/internal/core/ports"
)

type stubUserRepo struct {
	createFn      func(ctx context.Context, user *domain.User) (*domain.User, error)
	findByIDFn    func(ctx context.Context, id string) (*domain.User, error)
	findByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	updateFn      func(ctx context.Context, user *domain.User) (*domain.User, error)
	touchFn       func(ctx context.Context, id string) error
}

func (s *stubUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if s.createFn == nil {
		return nil, errors.New("unexpected Create")
	}
	return s.createFn(ctx, user)
}

func (s *stubUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if s.findByIDFn == nil {
		return nil, domain.ErrUserNotFound
	}
	return s.findByIDFn(ctx, id)
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if s.findByEmailFn == nil {
		return nil, domain.ErrUserNotFound
	}
	return s.findByEmailFn(ctx, email)
}

func (s *stubUserRepo) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	if s.updateFn == nil {
		return nil, errors.New("unexpected Update")
	}
	return s.updateFn(ctx, user)
}

func (s *stubUserRepo) TouchLastLogin(ctx context.Context, id string) error {
	if s.touchFn == nil {
		return nil
	}
	return s.touchFn(ctx, id)
}

type stubTokens struct {
	issueFn     func(ctx context.Context, userID, email string) (*ports.TokenPair, error)
	rotateFn    func(ctx context.Context, refreshToken string) (*ports.TokenPair, error)
	revokeAllFn func(ctx context.Context, userID string) error
}

func (s *stubTokens) IssuePair(ctx context.Context, userID, email string) (*ports.TokenPair, error) {
	if s.issueFn == nil {
		return &ports.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil
	}
	return s.issueFn(ctx, userID, email)
}

func (s *stubTokens) VerifyAccess(string) (*ports.TokenClaims, error) {
	return nil, domain.ErrInvalidToken
}

func (s *stubTokens) Rotate(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	if s.rotateFn == nil {
		return nil, domain.ErrInvalidToken
	}
	return s.rotateFn(ctx, refreshToken)
}

func (s *stubTokens) RevokeAll(ctx context.Context, userID string) error {
	if s.revokeAllFn == nil {
		return nil
	}
	return s.revokeAllFn(ctx, userID)
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(hash)
}

func TestRegisterHashesPasswordAndNormalizesEmail(t *testing.T) {
	var stored *domain.User
	repo := &stubUserRepo{
		createFn: func(_ context.Context, user *domain.User) (*domain.User, error) {
			stored = user
			out := *user
			out.ID = "u1"
			return &out, nil
		},
	}
	svc := NewAuthService(repo, &stubTokens{}, zerolog.Nop())

	user, pair, err := svc.Register(context.Background(), ports.RegisterInput{
		Email: "  Ada@Example.COM ", Password: "secret123", FirstName: "Ada", LastName: "Lovelace",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID != "u1" {
		t.Fatalf("unexpected user %+v", user)
	}
	if pair == nil || pair.AccessToken == "" {
		t.Fatal("expected token pair")
	}
	if stored.Email != "ada@example.com" {
		t.Fatalf("email not normalized: %q", stored.Email)
	}
	if stored.PasswordHash == "secret123" {
		t.Fatal("password stored in plain text")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")) != nil {
		t.Fatal("stored hash does not match password")
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc := NewAuthService(&stubUserRepo{}, &stubTokens{}, zerolog.Nop())

	_, _, err := svc.Register(context.Background(), ports.RegisterInput{
		Email: "ada@example.com", Password: "short", FirstName: "Ada", LastName: "Lovelace",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegisterPropagatesEmailTaken(t *testing.T) {
	repo := &stubUserRepo{
		createFn: func(context.Context, *domain.User) (*domain.User, error) {
			return nil, domain.ErrEmailTaken
		},
	}
	svc := NewAuthService(repo, &stubTokens{}, zerolog.Nop())

	_, _, err := svc.Register(context.Background(), ports.RegisterInput{
		Email: "ada@example.com", Password: "secret123", FirstName: "Ada", LastName: "Lovelace",
	})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginSuccessTouchesLastLogin(t *testing.T) {
	var touched string
	repo := &stubUserRepo{
		findByEmailFn: func(_ context.Context, email string) (*domain.User, error) {
			if email != "ada@example.com" {
				t.Fatalf("email not normalized before lookup: %q", email)
			}
			return &domain.User{ID: "u1", Email: email, PasswordHash: hashPassword(t, "secret123")}, nil
		},
		touchFn: func(_ context.Context, id string) error {
			touched = id
			return nil
		},
	}
	svc := NewAuthService(repo, &stubTokens{}, zerolog.Nop())

	user, pair, err := svc.Login(context.Background(), " Ada@Example.com ", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != "u1" || pair == nil {
		t.Fatalf("unexpected result %+v %+v", user, pair)
	}
	if touched != "u1" {
		t.Fatalf("last login not recorded, touched=%q", touched)
	}
}

func TestLoginDoesNotRevealAccountExistence(t *testing.T) {
	knownUser := &domain.User{ID: "u1", Email: "ada@example.com", PasswordHash: hashPassword(t, "secret123")}
	repo := &stubUserRepo{
		findByEmailFn: func(_ context.Context, email string) (*domain.User, error) {
			if email == "ada@example.com" {
				return knownUser, nil
			}
			return nil, domain.ErrUserNotFound
		},
	}
	svc := NewAuthService(repo, &stubTokens{}, zerolog.Nop())

	_, _, wrongPass := svc.Login(context.Background(), "ada@example.com", "wrongpass")
	_, _, noAccount := svc.Login(context.Background(), "ghost@example.com", "whatever1")

	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if !errors.Is(noAccount, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown account: expected ErrInvalidCredentials, got %v", noAccount)
	}
}

func TestUpdateProfileAppliesOnlySetFields(t *testing.T) {
	existing := &domain.User{ID: "u1", FirstName: "Ada", LastName: "Lovelace", Bio: "original bio"}
	repo := &stubUserRepo{
		findByIDFn: func(context.Context, string) (*domain.User, error) {
			u := *existing
			return &u, nil
		},
		updateFn: func(_ context.Context, user *domain.User) (*domain.User, error) {
			return user, nil
		},
	}
	svc := NewAuthService(repo, &stubTokens{}, zerolog.Nop())

	bio := "new bio"
	updated, err := svc.UpdateProfile(context.Background(), "u1", ports.UpdateProfileInput{Bio: &bio})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Bio != "new bio" {
		t.Fatalf("bio not applied: %q", updated.Bio)
	}
	if updated.FirstName != "Ada" || updated.LastName != "Lovelace" {
		t.Fatalf("unset fields were touched: %+v", updated)
	}
	if updated.UpdatedAt.IsZero() {
		t.Fatal("UpdatedAt not set")
	}
}

func TestChangePasswordRequiresCurrentAndRevokesSessions(t *testing.T) {
	user := &domain.User{ID: "u1", PasswordHash: hashPassword(t, "oldsecret")}
	repo := &stubUserRepo{
		findByIDFn: func(context.Context, string) (*domain.User, error) {
			u := *user
			return &u, nil
		},
		updateFn: func(_ context.Context, u *domain.User) (*domain.User, error) {
			user = u
			return u, nil
		},
	}
	var revoked string
	tokens := &stubTokens{revokeAllFn: func(_ context.Context, userID string) error {
		revoked = userID
		return nil
	}}
	svc := NewAuthService(repo, tokens, zerolog.Nop())

	if err := svc.ChangePassword(context.Background(), "u1", "wrongpass", "newsecret1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong current password: expected ErrInvalidCredentials, got %v", err)
	}
	if revoked != "" {
		t.Fatal("sessions revoked despite failed change")
	}

	if err := svc.ChangePassword(context.Background(), "u1", "oldsecret", "newsecret1"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if revoked != "u1" {
		t.Fatalf("expected all sessions revoked for u1, got %q", revoked)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("newsecret1")) != nil {
		t.Fatal("new password not stored")
	}
}

func TestLogoutRevokesRefreshTokens(t *testing.T) {
	var revoked string
	tokens := &stubTokens{revokeAllFn: func(_ context.Context, userID string) error {
		revoked = userID
		return nil
	}}
	svc := NewAuthService(&stubUserRepo{}, tokens, zerolog.Nop())

	if err := svc.Logout(context.Background(), "u1"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if revoked != "u1" {
		t.Fatalf("expected revocation for u1, got %q", revoked)
	}
}
