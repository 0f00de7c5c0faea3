package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/devfolio/portfolio-system/internal/core/domain"
	"github.com/devfolio/portfolio-system/internal/core/ports"
)

// TokenService issues HS256 JWT pairs. Access tokens are stateless; refresh
// tokens carry a jti that must be present in the RefreshTokenStore, so a
// logout or rotation invalidates them server-side.
type TokenService struct {
	secret     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	store      ports.RefreshTokenStore
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration, store ports.RefreshTokenStore) *TokenService {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &TokenService{secret: secret, accessTTL: accessTTL, refreshTTL: refreshTTL, store: store}
}

func (s *TokenService) IssuePair(ctx context.Context, userID, email string) (*ports.TokenPair, error) {
	access, err := s.sign(jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"exp":     time.Now().Add(s.accessTTL).Unix(),
	})
	if err != nil {
		return nil, err
	}

	jti := uuid.NewString()
	refresh, err := s.sign(jwt.MapClaims{
		"user_id": userID,
		"jti":     jti,
		"exp":     time.Now().Add(s.refreshTTL).Unix(),
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, userID, jti, s.refreshTTL); err != nil {
		return nil, err
	}

	return &ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *TokenService) VerifyAccess(tokenString string) (*ports.TokenClaims, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	email, _ := claims["email"].(string)
	if userID == "" {
		return nil, domain.ErrInvalidToken
	}
	return &ports.TokenClaims{UserID: userID, Email: email}, nil
}

func (s *TokenService) Rotate(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	claims, err := s.parse(refreshToken)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	jti, _ := claims["jti"].(string)
	if userID == "" || jti == "" {
		return nil, domain.ErrInvalidToken
	}

	ok, err := s.store.Exists(ctx, userID, jti)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidToken
	}

	// Revoke before reissuing so a stolen token cannot be replayed.
	if err := s.store.Revoke(ctx, userID, jti); err != nil {
		return nil, err
	}

	email, _ := claims["email"].(string)
	return s.IssuePair(ctx, userID, email)
}

func (s *TokenService) RevokeAll(ctx context.Context, userID string) error {
	return s.store.RevokeUser(ctx, userID)
}

func (s *TokenService) sign(claims jwt.MapClaims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.secret))
}

func (s *TokenService) parse(tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.secret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
