package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/stagecrew/crew-scheduler/internal/core/domain"
)

const defaultTokenTTL = 72 * time.Hour

// TokenStore keeps one-time invitation and reset tokens.
// Key format: token:<purpose>:<token> -> identity id
type TokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewTokenStore(client *redis.Client, ttl time.Duration) *TokenStore {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenStore{client: client, ttl: ttl}
}

func (s *TokenStore) Issue(ctx context.Context, purpose, identityID string) (string, error) {
	token := uuid.NewString()
	if err := s.client.Set(ctx, tokenKey(purpose, token), identityID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("issue %s token: %w", purpose, err)
	}
	return token, nil
}

// Consume returns the identity the token was issued for and deletes it, so a
// token can be used exactly once.
func (s *TokenStore) Consume(ctx context.Context, purpose, token string) (string, error) {
	if token == "" {
		return "", domain.ErrInvalidToken
	}
	id, err := s.client.GetDel(ctx, tokenKey(purpose, token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrInvalidToken
	}
	if err != nil {
		return "", fmt.Errorf("consume %s token: %w", purpose, err)
	}
	return id, nil
}

func tokenKey(purpose, token string) string {
	return fmt.Sprintf("token:%s:%s", purpose, token)
}
