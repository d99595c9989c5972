package auth

// Package auth contains simple hand-written test doubles for session ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"sync"
	"time"

	domainauth "github.com/target/shop-admin/internal/domain/auth"
	"github.com/target/shop-admin/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthAPI      = (*FakeAuthAPI)(nil)
	_ ports.SessionStore = (*MemorySessionStore)(nil)
)

// FakeAuthAPI simulates the shop API auth endpoints with a fixed credential set.
type FakeAuthAPI struct {
	LoginFunc func(ctx context.Context, email, password string) (string, domainauth.User, error)
	MeFunc    func(ctx context.Context, token string) (domainauth.User, error)

	// Deterministic values for predictable testing
	Email    string
	Password string
	Token    string
	User     domainauth.User

	mu       sync.Mutex
	meCalls  int
	loginErr error
}

// NewFakeAuthAPI creates a FakeAuthAPI that accepts admin@example.com / secret.
func NewFakeAuthAPI() *FakeAuthAPI {
	return &FakeAuthAPI{
		Email:    "admin@example.com",
		Password: "secret",
		Token:    "tok-admin",
		User: domainauth.User{
			ID:    "u-admin",
			Name:  "Admin",
			Email: "admin@example.com",
			Role:  domainauth.RoleAdmin,
		},
		loginErr: ErrInvalidCredentials,
	}
}

func (f *FakeAuthAPI) Login(ctx context.Context, email, password string) (string, domainauth.User, error) {
	if f.LoginFunc != nil {
		return f.LoginFunc(ctx, email, password)
	}
	if email != f.Email || password != f.Password {
		return "", domainauth.User{}, f.loginErr
	}
	return f.Token, f.User, nil
}

func (f *FakeAuthAPI) Me(ctx context.Context, token string) (domainauth.User, error) {
	f.mu.Lock()
	f.meCalls++
	f.mu.Unlock()

	if f.MeFunc != nil {
		return f.MeFunc(ctx, token)
	}
	if token != f.Token {
		return domainauth.User{}, ErrUnauthorized
	}
	return f.User, nil
}

// MeCalls returns how many profile fetches were made.
func (f *FakeAuthAPI) MeCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.meCalls
}

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]ports.StoredSession
	ttls     map[string]time.Duration
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]ports.StoredSession),
		ttls:     make(map[string]time.Duration),
	}
}

func (m *MemorySessionStore) Load(_ context.Context, sid string) (ports.StoredSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[sid], nil
}

func (m *MemorySessionStore) SaveToken(_ context.Context, sid, token string, ttl time.Duration) error {
	return m.save(sid, ttl, func(s *ports.StoredSession) { s.Token = token })
}

func (m *MemorySessionStore) SaveUser(_ context.Context, sid, userJSON string, ttl time.Duration) error {
	return m.save(sid, ttl, func(s *ports.StoredSession) { s.User = userJSON })
}

func (m *MemorySessionStore) save(sid string, ttl time.Duration, apply func(*ports.StoredSession)) error {
	if sid == "" {
		return errors.New("session ID cannot be empty")
	}
	if ttl <= 0 {
		return errors.New("session is expired")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.sessions[sid]
	apply(&s)
	m.sessions[sid] = s
	m.ttls[sid] = ttl
	return nil
}

func (m *MemorySessionStore) Clear(_ context.Context, sid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sid)
	delete(m.ttls, sid)
	return nil
}

// Put seeds the raw durable entries for sid.
func (m *MemorySessionStore) Put(sid string, s ports.StoredSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sid] = s
}

// Snapshot returns the raw durable entries for sid.
func (m *MemorySessionStore) Snapshot(sid string) ports.StoredSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[sid]
}

// LastTTL returns the ttl of the most recent save for sid.
func (m *MemorySessionStore) LastTTL(sid string) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ttls[sid]
}

// statusError mimics a shop API reply with an HTTP status.
type statusError struct {
	status int
	msg    string
}

func (e statusError) Error() string         { return e.msg }
func (e statusError) StatusCode() int       { return e.status }
func (e statusError) ServerMessage() string { return e.msg }

// Errors returned by the fakes. They carry HTTP statuses so callers classify
// them the same way they classify real shop API replies.
var (
	ErrInvalidCredentials error = statusError{status: 401, msg: "ایمیل یا رمز عبور اشتباه است"}
	ErrUnauthorized       error = statusError{status: 401, msg: "unauthorized"}
	ErrUnavailable        error = statusError{status: 503, msg: "service unavailable"}
)
