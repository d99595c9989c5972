package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/target/shop-admin/internal/domain/auth"
	"github.com/target/shop-admin/internal/ports"
)

func TestFakeAuthAPI_LoginDefaults(t *testing.T) {
	api := NewFakeAuthAPI()
	ctx := context.Background()

	token, user, err := api.Login(ctx, "admin@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-admin", token)
	assert.Equal(t, domainauth.RoleAdmin, user.Role)

	_, _, err = api.Login(ctx, "admin@example.com", "nope")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestFakeAuthAPI_MeCountsCalls(t *testing.T) {
	api := NewFakeAuthAPI()
	ctx := context.Background()

	_, err := api.Me(ctx, "tok-admin")
	require.NoError(t, err)
	_, err = api.Me(ctx, "stale")
	require.ErrorIs(t, err, ErrUnauthorized)

	assert.Equal(t, 2, api.MeCalls())
}

func TestFakeAuthAPI_CustomFuncs(t *testing.T) {
	api := &FakeAuthAPI{
		MeFunc: func(context.Context, string) (domainauth.User, error) {
			return domainauth.User{}, ErrUnavailable
		},
	}
	_, err := api.Me(context.Background(), "any")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestMemorySessionStore_SaveLoadClear(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	require.NoError(t, store.SaveToken(ctx, "sid", "tok", time.Hour))
	require.NoError(t, store.SaveUser(ctx, "sid", `{"id":"u1"}`, time.Minute))

	got, err := store.Load(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, ports.StoredSession{Token: "tok", User: `{"id":"u1"}`}, got)
	assert.Equal(t, time.Minute, store.LastTTL("sid"))

	require.NoError(t, store.Clear(ctx, "sid"))
	assert.Equal(t, ports.StoredSession{}, store.Snapshot("sid"))
}

func TestMemorySessionStore_RejectsInvalidSave(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	require.Error(t, store.SaveToken(ctx, "", "tok", time.Hour))
	require.Error(t, store.SaveUser(ctx, "sid", "{}", 0))
}
