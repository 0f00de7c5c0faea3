package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RefreshTokenStore is the Redis-backed allow-list for refresh tokens.
// Key format: refresh:<user_id>:<token_id>, expiring with the token TTL, so
// unrevoked entries clean themselves up.
type RefreshTokenStore struct {
	client *redis.Client
}

func NewRefreshTokenStore(client *redis.Client) *RefreshTokenStore {
	return &RefreshTokenStore{client: client}
}

func (s *RefreshTokenStore) Save(ctx context.Context, userID, tokenID string, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(userID, tokenID), "1", ttl).Err()
}

func (s *RefreshTokenStore) Exists(ctx context.Context, userID, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(userID, tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("refresh token check: %w", err)
	}
	return n > 0, nil
}

func (s *RefreshTokenStore) Revoke(ctx context.Context, userID, tokenID string) error {
	return s.client.Del(ctx, s.key(userID, tokenID)).Err()
}

// RevokeUser removes every refresh token of the user.
func (s *RefreshTokenStore) RevokeUser(ctx context.Context, userID string) error {
	iter := s.client.Scan(ctx, 0, s.key(userID, "*"), 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("revoke user tokens: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("revoke user tokens: %w", err)
	}
	return nil
}

func (s *RefreshTokenStore) key(userID, tokenID string) string {
	return fmt.Sprintf("refresh:%s:%s", userID, tokenID)
}
