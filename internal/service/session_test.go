package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/target/shop-admin/internal/domain/auth"
	apperrors "github.com/target/shop-admin/internal/errors"
	"github.com/target/shop-admin/internal/mocks"
	authmocks "github.com/target/shop-admin/internal/mocks/auth"
	"github.com/target/shop-admin/internal/ports"
	"github.com/target/shop-admin/internal/testutil"
)

const testSID = "sid-1"

func newTestHolder(api ports.AuthAPI, store ports.SessionStore) *SessionHolder {
	return NewSessionHolder(SessionHolderOptions{
		SessionID: testSID,
		Store:     store,
		Auth:      api,
		Now:       testutil.FixedTimeFunc(testutil.TestTime()),
	})
}

func storedUser(t *testing.T, u domainauth.User) string {
	t.Helper()
	b, err := json.Marshal(u)
	require.NoError(t, err)
	return string(b)
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u-admin",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return tok
}

func TestSessionHolder_Login_PersistsTokenAndUser(t *testing.T) {
	api := authmocks.NewFakeAuthAPI()
	store := authmocks.NewMemorySessionStore()
	h := newTestHolder(api, store)

	user, err := h.Login(context.Background(), " admin@example.com ", "secret")
	require.NoError(t, err)
	assert.Equal(t, "u-admin", user.ID)

	assert.True(t, h.IsAuthenticated())
	sess := h.Session()
	assert.Equal(t, "tok-admin", sess.Token)
	require.NotNil(t, sess.User)
	assert.Equal(t, "Admin", sess.DisplayName())

	raw := store.Snapshot(testSID)
	assert.Equal(t, "tok-admin", raw.Token)
	var persisted domainauth.User
	require.NoError(t, json.Unmarshal([]byte(raw.User), &persisted))
	assert.Equal(t, user, persisted)
	assert.Equal(t, DefaultSessionTTL, store.LastTTL(testSID))
}

func TestSessionHolder_Login_RequiresCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAuthAPI(ctrl)
	h := newTestHolder(api, authmocks.NewMemorySessionStore())

	_, err := h.Login(context.Background(), "  ", "secret")
	require.ErrorIs(t, err, ErrCredentialsRequired)
	_, err = h.Login(context.Background(), "admin@example.com", "")
	require.ErrorIs(t, err, ErrCredentialsRequired)
	assert.True(t, apperrors.IsValidation(err))
}

func TestSessionHolder_Login_FailureLeavesStateUnchanged(t *testing.T) {
	api := authmocks.NewFakeAuthAPI()
	store := authmocks.NewMemorySessionStore()
	h := newTestHolder(api, store)

	_, err := h.Login(context.Background(), "admin@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, "ایمیل یا رمز عبور اشتباه است", apperrors.UserMessage(err))

	assert.False(t, h.IsAuthenticated())
	assert.Equal(t, ports.StoredSession{}, store.Snapshot(testSID))
}

func TestSessionHolder_Login_StoreFailureKeepsMemoryEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)
	store.EXPECT().SaveToken(gomock.Any(), testSID, "tok-admin", DefaultSessionTTL).Return(errors.New("redis down"))

	h := newTestHolder(authmocks.NewFakeAuthAPI(), store)
	_, err := h.Login(context.Background(), "admin@example.com", "secret")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "save token")
	assert.False(t, h.IsAuthenticated())
}

func TestSessionHolder_Login_UserWriteFailureClearsToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)
	gomock.InOrder(
		store.EXPECT().SaveToken(gomock.Any(), testSID, "tok-admin", gomock.Any()).Return(nil),
		store.EXPECT().SaveUser(gomock.Any(), testSID, gomock.Any(), gomock.Any()).Return(errors.New("redis down")),
		store.EXPECT().Clear(gomock.Any(), testSID).Return(nil),
	)

	h := newTestHolder(authmocks.NewFakeAuthAPI(), store)
	_, err := h.Login(context.Background(), "admin@example.com", "secret")

	require.Error(t, err)
	assert.False(t, h.IsAuthenticated())
}

func TestSessionHolder_Login_TokenExpiryBoundsTTL(t *testing.T) {
	now := testutil.TestTime()
	token := signedToken(t, now.Add(time.Hour))

	api := authmocks.NewFakeAuthAPI()
	api.Token = token
	store := authmocks.NewMemorySessionStore()
	h := newTestHolder(api, store)

	_, err := h.Login(context.Background(), "admin@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, time.Hour, store.LastTTL(testSID))
}

func TestSessionHolder_Logout_IsIdempotent(t *testing.T) {
	api := authmocks.NewFakeAuthAPI()
	store := authmocks.NewMemorySessionStore()
	h := newTestHolder(api, store)
	ctx := context.Background()

	_, err := h.Login(ctx, "admin@example.com", "secret")
	require.NoError(t, err)

	require.NoError(t, h.Logout(ctx))
	require.NoError(t, h.Logout(ctx))

	assert.False(t, h.IsAuthenticated())
	assert.Equal(t, domainauth.Session{}, h.Session())
	assert.Equal(t, ports.StoredSession{}, store.Snapshot(testSID))
}

func TestSessionHolder_Logout_ClearsMemoryEvenWhenStoreFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)
	store.EXPECT().SaveToken(gomock.Any(), testSID, gomock.Any(), gomock.Any()).Return(nil)
	store.EXPECT().SaveUser(gomock.Any(), testSID, gomock.Any(), gomock.Any()).Return(nil)
	store.EXPECT().Clear(gomock.Any(), testSID).Return(errors.New("redis down"))

	h := newTestHolder(authmocks.NewFakeAuthAPI(), store)
	_, err := h.Login(context.Background(), "admin@example.com", "secret")
	require.NoError(t, err)

	err = h.Logout(context.Background())
	require.Error(t, err)
	assert.False(t, h.IsAuthenticated())
}

func TestSessionHolder_Hydrate_LoadsFullSessionWithoutProfileFetch(t *testing.T) {
	api := authmocks.NewFakeAuthAPI()
	store := authmocks.NewMemorySessionStore()
	store.Put(testSID, ports.StoredSession{Token: "tok-admin", User: storedUser(t, api.User)})
	h := newTestHolder(api, store)

	assert.False(t, h.IsAuthenticated(), "nothing is loaded before hydration")
	require.NoError(t, h.Hydrate(context.Background()))

	assert.True(t, h.IsAuthenticated())
	assert.Equal(t, 0, api.MeCalls())
	assert.Equal(t, "Admin", h.Session().DisplayName())
}

func TestSessionHolder_Hydrate_FetchesMissingProfile(t *testing.T) {
	api := authmocks.NewFakeAuthAPI()
	store := authmocks.NewMemorySessionStore()
	store.Put(testSID, ports.StoredSession{Token: "tok-admin"})
	h := newTestHolder(api, store)

	require.NoError(t, h.Hydrate(context.Background()))

	assert.Equal(t, 1, api.MeCalls())
	require.NotNil(t, h.Session().User)
	assert.Equal(t, "admin@example.com", h.Session().User.Email)
	assert.NotEmpty(t, store.Snapshot(testSID).User, "hydrated profile is persisted")

	require.NoError(t, h.Hydrate(context.Background()))
	assert.Equal(t, 1, api.MeCalls())
}

func TestSessionHolder_Hydrate_CorruptProfileRefetches(t *testing.T) {
	api := authmocks.NewFakeAuthAPI()
	store := authmocks.NewMemorySessionStore()
	store.Put(testSID, ports.StoredSession{Token: "tok-admin", User: "{not json"})
	h := newTestHolder(api, store)

	require.NoError(t, h.Hydrate(context.Background()))
	assert.Equal(t, 1, api.MeCalls())
	require.NotNil(t, h.Session().User)
}

func TestSessionHolder_Hydrate_RejectedTokenLogsOut(t *testing.T) {
	api := authmocks.NewFakeAuthAPI()
	store := authmocks.NewMemorySessionStore()
	store.Put(testSID, ports.StoredSession{Token: "tok-revoked"})
	h := newTestHolder(api, store)

	err := h.Hydrate(context.Background())

	require.ErrorIs(t, err, ErrSessionExpired)
	assert.False(t, h.IsAuthenticated())
	assert.Equal(t, ports.StoredSession{}, store.Snapshot(testSID))
}

func TestSessionHolder_Hydrate_TransientFailureKeepsToken(t *testing.T) {
	api := authmocks.NewFakeAuthAPI()
	fail := true
	api.MeFunc = func(_ context.Context, token string) (domainauth.User, error) {
		if fail {
			return domainauth.User{}, authmocks.ErrUnavailable
		}
		return api.User, nil
	}
	store := authmocks.NewMemorySessionStore()
	store.Put(testSID, ports.StoredSession{Token: "tok-admin"})
	h := newTestHolder(api, store)

	err := h.Hydrate(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionExpired)
	assert.True(t, apperrors.IsUpstream(err))

	assert.True(t, h.IsAuthenticated(), "token survives a transient failure")
	assert.Nil(t, h.Session().User)
	assert.Equal(t, "tok-admin", store.Snapshot(testSID).Token)

	fail = false
	require.NoError(t, h.Hydrate(context.Background()))
	assert.Equal(t, 2, api.MeCalls())
	assert.NotNil(t, h.Session().User)
}

func TestSessionHolder_Hydrate_ConcurrentCallersShareProfileFetch(t *testing.T) {
	api := authmocks.NewFakeAuthAPI()
	api.MeFunc = func(_ context.Context, _ string) (domainauth.User, error) {
		time.Sleep(10 * time.Millisecond)
		return api.User, nil
	}
	store := authmocks.NewMemorySessionStore()
	store.Put(testSID, ports.StoredSession{Token: "tok-admin"})
	h := newTestHolder(api, store)

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, h.Hydrate(context.Background()))
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, api.MeCalls())
}

func TestSessionHolder_Hydrate_StoreLoadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)
	store.EXPECT().Load(gomock.Any(), testSID).Return(ports.StoredSession{}, errors.New("redis down"))

	h := newTestHolder(authmocks.NewFakeAuthAPI(), store)
	err := h.Hydrate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load session")
	assert.False(t, h.IsAuthenticated())
}

func TestSessionHolder_Token(t *testing.T) {
	h := newTestHolder(authmocks.NewFakeAuthAPI(), authmocks.NewMemorySessionStore())

	_, err := h.Token()
	require.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = h.Login(context.Background(), "admin@example.com", "secret")
	require.NoError(t, err)

	tok, err := h.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok-admin", tok.AccessToken)
	assert.Equal(t, "Bearer", tok.Type())
}

func TestSessionHolder_WithoutSessionIDKeepsMemoryOnly(t *testing.T) {
	h := NewSessionHolder(SessionHolderOptions{Auth: authmocks.NewFakeAuthAPI()})

	_, err := h.Login(context.Background(), "admin@example.com", "secret")
	require.NoError(t, err)
	assert.True(t, h.IsAuthenticated())
	require.NoError(t, h.Hydrate(context.Background()))
	require.NoError(t, h.Logout(context.Background()))
}

func TestBoundTTL(t *testing.T) {
	now := testutil.TestTime()
	ttl := 12 * time.Hour

	assert.Equal(t, ttl, boundTTL("opaque-token", ttl, now))
	assert.Equal(t, ttl, boundTTL(signedToken(t, now.Add(48*time.Hour)), ttl, now))
	assert.Equal(t, 2*time.Hour, boundTTL(signedToken(t, now.Add(2*time.Hour)), ttl, now))
	assert.Equal(t, minSessionTTL, boundTTL(signedToken(t, now.Add(-time.Hour)), ttl, now))

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "x"}).SignedString([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, ttl, boundTTL(noExp, ttl, now))
}
