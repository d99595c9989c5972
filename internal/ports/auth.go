package ports

// Package ports defines interfaces (hexagonal ports) for session and shop API behavior.
// Implementations live in internal/adapters and internal/apiclient; orchestration in internal/service.

import (
	"context"
	"time"

	domainauth "github.com/target/shop-admin/internal/domain/auth"
)

// AuthAPI is the remote authentication surface. The backend issues and
// validates tokens; the client only forwards them.
type AuthAPI interface {
	// Login exchanges credentials for a bearer token and the operator profile.
	Login(ctx context.Context, email, password string) (token string, user domainauth.User, err error)

	// Me returns the profile that owns token.
	Me(ctx context.Context, token string) (domainauth.User, error)
}

// StoredSession is the raw content of durable session storage: two keyed
// string entries. Empty strings mean the entry is absent.
type StoredSession struct {
	Token string
	User  string
}

// SessionStore persists the durable token and user entries of an operator session.
// Load on an unknown id returns an empty StoredSession and no error.
type SessionStore interface {
	Load(ctx context.Context, sid string) (StoredSession, error)
	SaveToken(ctx context.Context, sid, token string, ttl time.Duration) error
	SaveUser(ctx context.Context, sid, userJSON string, ttl time.Duration) error
	Clear(ctx context.Context, sid string) error
}
