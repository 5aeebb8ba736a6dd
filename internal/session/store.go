package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nexus-backend/pkg/id"

	"github.com/redis/go-redis/v9"
)

var ErrNotFound = errors.New("session: not found or expired")

// Session is what a resolved bearer token stands for.
type Session struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Store keeps sessions in Redis keyed by opaque token. Expiry is handled by
// the key TTL, so there is no sweep to run.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func key(token string) string { return "session:" + token }

// Issue creates a session and returns its bearer token.
func (s *Store) Issue(ctx context.Context, username, role string) (string, error) {
	token := id.NewID32()
	payload, err := json.Marshal(Session{Username: username, Role: role})
	if err != nil {
		return "", fmt.Errorf("session: marshal: %w", err)
	}
	if err := s.rdb.Set(ctx, key(token), payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("session: store: %w", err)
	}
	return token, nil
}

// Resolve maps a bearer token back to its session.
func (s *Store) Resolve(ctx context.Context, token string) (*Session, error) {
	raw, err := s.rdb.Get(ctx, key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("session: unmarshal: %w", err)
	}
	return &sess, nil
}

// Revoke drops a session immediately.
func (s *Store) Revoke(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, key(token)).Err()
}
