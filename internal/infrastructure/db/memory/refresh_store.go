package memory

import (
	"context"
	"sync"
	"time"
)

type refreshEntry struct {
	userID    string
	expiresAt time.Time
}

// RefreshTokenStore is the in-process refresh-token allow-list.
type RefreshTokenStore struct {
	mu     sync.Mutex
	tokens map[string]refreshEntry // keyed by tokenID
}

func NewRefreshTokenStore() *RefreshTokenStore {
	return &RefreshTokenStore{tokens: make(map[string]refreshEntry)}
}

func (s *RefreshTokenStore) Save(_ context.Context, userID, tokenID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[tokenID] = refreshEntry{userID: userID, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *RefreshTokenStore) Exists(_ context.Context, userID, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.tokens[tokenID]
	if !ok || entry.userID != userID {
		return false, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.tokens, tokenID)
		return false, nil
	}
	return true, nil
}

func (s *RefreshTokenStore) Revoke(_ context.Context, userID, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.tokens[tokenID]; ok && entry.userID == userID {
		delete(s.tokens, tokenID)
	}
	return nil
}

func (s *RefreshTokenStore) RevokeUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, entry := range s.tokens {
		if entry.userID == userID {
			delete(s.tokens, id)
		}
	}
	return nil
}
