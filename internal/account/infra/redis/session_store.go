package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dimasqi/storefront/internal/account/app"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionStore maps opaque uuid tokens to user IDs with a sliding TTL.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *SessionStore) Issue(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	if err := s.client.Set(ctx, sessionKey(token), userID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

func (s *SessionStore) Resolve(ctx context.Context, token string) (string, error) {
	userID, err := s.client.GetEx(ctx, sessionKey(token), s.ttl).Result()
	if errors.Is(err, redis.Nil) {
		return "", app.ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("resolve session: %w", err)
	}
	return userID, nil
}

func (s *SessionStore) Revoke(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}
