package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"

	domainauth "github.com/target/shop-admin/internal/domain/auth"
	apperrors "github.com/target/shop-admin/internal/errors"
	"github.com/target/shop-admin/internal/ports"
)

// DefaultSessionTTL bounds durable session entries when no TTL is configured.
const DefaultSessionTTL = 12 * time.Hour

var (
	// ErrSessionExpired is returned by Hydrate when the backend rejected the stored token.
	ErrSessionExpired = errors.New("session expired")
	// ErrNotAuthenticated is returned by Token when no bearer is held.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrCredentialsRequired is returned by Login for an empty email or password.
	ErrCredentialsRequired = apperrors.Validation("ایمیل و رمز عبور الزامی است")
)

// SessionHolderOptions groups dependencies for SessionHolder.
type SessionHolderOptions struct {
	SessionID string
	Store     ports.SessionStore
	Auth      ports.AuthAPI
	TTL       time.Duration
	Logger    *slog.Logger
	Now       func() time.Time
}

// SessionHolder owns one operator session: the bearer token, the profile it
// belongs to, and their durable copy.
type SessionHolder struct {
	sid    string
	store  ports.SessionStore
	auth   ports.AuthAPI
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time

	mu      sync.RWMutex
	session domainauth.Session
	loaded  bool

	// hydrateMu serializes Hydrate so concurrent requests share one /auth/me round trip.
	hydrateMu sync.Mutex
}

// NewSessionHolder constructs a SessionHolder. Nothing is loaded until Hydrate.
func NewSessionHolder(opts SessionHolderOptions) *SessionHolder {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &SessionHolder{
		sid:    opts.SessionID,
		store:  opts.Store,
		auth:   opts.Auth,
		ttl:    ttl,
		logger: logger.With("component", "session"),
		now:    now,
	}
}

// ID returns the durable storage key of this session.
func (h *SessionHolder) ID() string { return h.sid }

// Session returns a copy of the current in-memory state.
func (h *SessionHolder) Session() domainauth.Session {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.session.Clone()
}

// IsAuthenticated reports whether a token is held. It can be true before the
// profile has been confirmed by Hydrate.
func (h *SessionHolder) IsAuthenticated() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.session.IsAuthenticated()
}

// Token implements oauth2.TokenSource for resource clients.
func (h *SessionHolder) Token() (*oauth2.Token, error) {
	h.mu.RLock()
	tok := h.session.Token
	h.mu.RUnlock()
	if tok == "" {
		return nil, ErrNotAuthenticated
	}
	return &oauth2.Token{AccessToken: tok, TokenType: "Bearer"}, nil
}

// Login exchanges credentials for a token and persists the session. On any
// failure the held state is left unchanged.
func (h *SessionHolder) Login(ctx context.Context, email, password string) (domainauth.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domainauth.User{}, ErrCredentialsRequired
	}

	token, user, err := h.auth.Login(ctx, email, password)
	if err != nil {
		return domainauth.User{}, fmt.Errorf("login: %w", apperrors.MapUpstreamError(err))
	}
	if token == "" {
		return domainauth.User{}, apperrors.Upstream(apperrors.FallbackMessage, errors.New("login response carried no token"))
	}

	if err := h.persist(ctx, token, user); err != nil {
		return domainauth.User{}, err
	}

	h.mu.Lock()
	h.session = domainauth.Session{Token: token, User: &user}
	h.loaded = true
	h.mu.Unlock()

	h.logger.InfoContext(ctx, "operator logged in", "user_id", user.Key(), "role", user.Role)
	return user, nil
}

// Logout clears memory first and then durable storage. Calling it on an
// empty session is a no-op apart from the storage clear.
func (h *SessionHolder) Logout(ctx context.Context) error {
	h.mu.Lock()
	h.session = domainauth.Session{}
	h.loaded = true
	h.mu.Unlock()

	if h.sid == "" || h.store == nil {
		return nil
	}
	if err := h.store.Clear(ctx, h.sid); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Hydrate loads the durable session on first use and fetches the profile when
// only a token is stored. A rejected token logs the session out and returns
// ErrSessionExpired; other failures keep the token and return the error.
func (h *SessionHolder) Hydrate(ctx context.Context) error {
	h.hydrateMu.Lock()
	defer h.hydrateMu.Unlock()

	if err := h.load(ctx); err != nil {
		return err
	}

	current := h.Session()
	if !current.NeedsHydration() {
		return nil
	}

	user, err := h.auth.Me(ctx, current.Token)
	if err != nil {
		mapped := apperrors.MapUpstreamError(err)
		if apperrors.IsUnauthorized(mapped) {
			h.logger.InfoContext(ctx, "stored token rejected, logging out")
			if logoutErr := h.Logout(ctx); logoutErr != nil {
				return errors.Join(ErrSessionExpired, logoutErr)
			}
			return ErrSessionExpired
		}
		h.logger.WarnContext(ctx, "profile fetch failed, keeping token", "error", err)
		return fmt.Errorf("hydrate session: %w", mapped)
	}

	if err := h.saveUser(ctx, current.Token, user); err != nil {
		h.logger.WarnContext(ctx, "persist hydrated profile failed", "error", err)
	}

	h.mu.Lock()
	// A concurrent Logout or Login wins over this hydration.
	if h.session.Token == current.Token {
		h.session.User = &user
	}
	h.mu.Unlock()
	return nil
}

func (h *SessionHolder) load(ctx context.Context) error {
	h.mu.RLock()
	loaded := h.loaded
	h.mu.RUnlock()
	if loaded || h.sid == "" || h.store == nil {
		return nil
	}

	stored, err := h.store.Load(ctx, h.sid)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	s := domainauth.Session{Token: stored.Token}
	if stored.Token != "" && stored.User != "" {
		var u domainauth.User
		if jsonErr := json.Unmarshal([]byte(stored.User), &u); jsonErr != nil {
			h.logger.WarnContext(ctx, "discarding unreadable stored profile", "error", jsonErr)
		} else {
			s.User = &u
		}
	}

	h.mu.Lock()
	if !h.loaded {
		h.session = s
		h.loaded = true
	}
	h.mu.Unlock()
	return nil
}

func (h *SessionHolder) persist(ctx context.Context, token string, user domainauth.User) error {
	if h.sid == "" || h.store == nil {
		return nil
	}
	if err := h.store.SaveToken(ctx, h.sid, token, h.ttlFor(token)); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	if err := h.saveUser(ctx, token, user); err != nil {
		// Leave nothing half-written behind a failed login.
		if clearErr := h.store.Clear(ctx, h.sid); clearErr != nil {
			return errors.Join(err, fmt.Errorf("clear session: %w", clearErr))
		}
		return err
	}
	return nil
}

func (h *SessionHolder) saveUser(ctx context.Context, token string, user domainauth.User) error {
	if h.sid == "" || h.store == nil {
		return nil
	}
	b, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := h.store.SaveUser(ctx, h.sid, string(b), h.ttlFor(token)); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (h *SessionHolder) ttlFor(token string) time.Duration {
	return boundTTL(token, h.ttl, h.now())
}
