package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/devfolio/portfolio-system/internal/core/domain"
	"github.com/devfolio/portfolio-system/internal/core/ports"
)

const minPasswordLength = 8

// AuthService implements account registration, login and profile management.
type AuthService struct {
	repo   ports.UserRepository
	tokens ports.TokenIssuer
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenIssuer, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, *ports.TokenPair, error) {
	if input.Email == "" || len(input.Password) < minPasswordLength ||
		input.FirstName == "" || input.LastName == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	pair, err := s.tokens.IssuePair(ctx, created.ID, created.Email)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Msg("user registered")
	return created, pair, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *ports.TokenPair, error) {
	if email == "" || password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		// Do not reveal whether the account exists.
		return nil, nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	if err := s.repo.TouchLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("failed to record last login")
	}

	pair, err := s.tokens.IssuePair(ctx, user.ID, user.Email)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	return s.tokens.Rotate(ctx, refreshToken)
}

func (s *AuthService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, input ports.UpdateProfileInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Avatar != nil {
		user.Avatar = *input.Avatar
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Location != nil {
		user.Location = *input.Location
	}
	if input.Website != nil {
		user.Website = *input.Website
	}
	if input.LinkedIn != nil {
		user.LinkedIn = *input.LinkedIn
	}
	if input.GitHub != nil {
		user.GitHub = *input.GitHub
	}
	user.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, user)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now().UTC()
	if _, err := s.repo.Update(ctx, user); err != nil {
		return err
	}

	// Force re-authentication everywhere else.
	return s.tokens.RevokeAll(ctx, userID)
}

func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if err := s.tokens.RevokeAll(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to revoke refresh tokens")
		return err
	}
	return nil
}
