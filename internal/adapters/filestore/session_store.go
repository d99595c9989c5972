// Package filestore persists operator sessions for the CLI as JSON files under
// the user's config directory.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/target/shop-admin/internal/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// record is the on-disk shape. Entry names mirror the Redis adapter.
type record struct {
	Token          string    `json:"authToken,omitempty"`
	User           string    `json:"authUser,omitempty"`
	TokenExpiresAt time.Time `json:"tokenExpiresAt,omitzero"`
	UserExpiresAt  time.Time `json:"userExpiresAt,omitzero"`
}

// SessionStore keeps one file per session id in dir.
type SessionStore struct {
	dir string
	now func() time.Time
	mu  sync.Mutex
}

// DefaultDir returns $XDG_CONFIG_HOME/shopadmin, falling back to ~/.config/shopadmin.
func DefaultDir() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "shopadmin"), nil
}

// NewSessionStore creates a file-backed store rooted at dir.
func NewSessionStore(dir string) *SessionStore {
	return &SessionStore{dir: dir, now: time.Now}
}

func (s *SessionStore) path(sid string) (string, error) {
	if sid == "" || strings.ContainsAny(sid, `/\`) || sid == "." || sid == ".." {
		return "", fmt.Errorf("invalid session id %q", sid)
	}
	return filepath.Join(s.dir, sid+".json"), nil
}

func (s *SessionStore) read(p string) (record, error) {
	data, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return record{}, nil
	}
	if err != nil {
		return record{}, fmt.Errorf("read session file: %w", err)
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		// A corrupt file is treated as an empty session.
		return record{}, nil
	}
	return rec, nil
}

func (s *SessionStore) write(p string, rec record) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, ".session-*")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close session file: %w", err)
	}
	if err := os.Rename(tmpName, p); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

// Load reads both entries, dropping any that have expired.
func (s *SessionStore) Load(_ context.Context, sid string) (ports.StoredSession, error) {
	if sid == "" {
		return ports.StoredSession{}, nil
	}
	p, err := s.path(sid)
	if err != nil {
		return ports.StoredSession{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.read(p)
	if err != nil {
		return ports.StoredSession{}, err
	}
	now := s.now()
	out := ports.StoredSession{}
	if rec.Token != "" && now.Before(rec.TokenExpiresAt) {
		out.Token = rec.Token
	}
	if rec.User != "" && now.Before(rec.UserExpiresAt) {
		out.User = rec.User
	}
	return out, nil
}

// SaveToken writes the token entry with ttl.
func (s *SessionStore) SaveToken(_ context.Context, sid, token string, ttl time.Duration) error {
	return s.update(sid, ttl, func(rec *record, exp time.Time) {
		rec.Token, rec.TokenExpiresAt = token, exp
	})
}

// SaveUser writes the serialized user entry with ttl.
func (s *SessionStore) SaveUser(_ context.Context, sid, userJSON string, ttl time.Duration) error {
	return s.update(sid, ttl, func(rec *record, exp time.Time) {
		rec.User, rec.UserExpiresAt = userJSON, exp
	})
}

func (s *SessionStore) update(sid string, ttl time.Duration, apply func(*record, time.Time)) error {
	if ttl <= 0 {
		return errors.New("session is expired")
	}
	p, err := s.path(sid)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.read(p)
	if err != nil {
		return err
	}
	apply(&rec, s.now().Add(ttl))
	return s.write(p, rec)
}

// Clear removes the session file. Clearing an unknown session is not an error.
func (s *SessionStore) Clear(_ context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	p, err := s.path(sid)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
