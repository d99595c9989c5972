package redis

// Package redis provides Redis-based adapters for the shop admin.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/target/shop-admin/internal/ports"
)

// Durable entry names. They match the keys the operator's browser used before
// sessions moved server-side.
const (
	tokenEntry = "authToken"
	userEntry  = "authUser"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore is a Redis-based store for the two durable session entries.
// Keys are <prefix><sid>:authToken and <prefix><sid>:authUser.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
}

// NewSessionStore creates a new Redis-based session store.
func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return &SessionStore{
		client: client,
		prefix: "session:",
	}
}

// NewSessionStoreWithPrefix creates a Redis session store with a custom key prefix.
func NewSessionStoreWithPrefix(client redis.UniversalClient, prefix string) *SessionStore {
	return &SessionStore{
		client: client,
		prefix: prefix,
	}
}

func (s *SessionStore) key(sid, entry string) string {
	return s.prefix + sid + ":" + entry
}

// Load reads both entries. Missing entries come back as empty strings.
func (s *SessionStore) Load(ctx context.Context, sid string) (ports.StoredSession, error) {
	if sid == "" {
		return ports.StoredSession{}, nil
	}

	vals, err := s.client.MGet(ctx, s.key(sid, tokenEntry), s.key(sid, userEntry)).Result()
	if err != nil {
		return ports.StoredSession{}, fmt.Errorf("redis mget: %w", err)
	}

	out := ports.StoredSession{}
	if len(vals) == 2 {
		out.Token, _ = vals[0].(string)
		out.User, _ = vals[1].(string)
	}
	return out, nil
}

// SaveToken writes the token entry with ttl.
func (s *SessionStore) SaveToken(ctx context.Context, sid, token string, ttl time.Duration) error {
	return s.save(ctx, sid, tokenEntry, token, ttl)
}

// SaveUser writes the serialized user entry with ttl.
func (s *SessionStore) SaveUser(ctx context.Context, sid, userJSON string, ttl time.Duration) error {
	return s.save(ctx, sid, userEntry, userJSON, ttl)
}

func (s *SessionStore) save(ctx context.Context, sid, entry, value string, ttl time.Duration) error {
	if sid == "" {
		return errors.New("session ID cannot be empty")
	}
	if ttl <= 0 {
		// Session is already expired, don't save it
		return errors.New("session is expired")
	}
	if err := s.client.Set(ctx, s.key(sid, entry), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", entry, err)
	}
	return nil
}

// Clear removes both entries. Clearing an unknown session is not an error.
func (s *SessionStore) Clear(ctx context.Context, sid string) error {
	if sid == "" {
		return nil // Nothing to delete
	}
	if err := s.client.Del(ctx, s.key(sid, tokenEntry), s.key(sid, userEntry)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
