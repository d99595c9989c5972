package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/shop-admin/internal/apiclient"
	authmocks "github.com/target/shop-admin/internal/mocks/auth"
	"github.com/target/shop-admin/internal/ports"
	"github.com/target/shop-admin/internal/testutil"
)

func newTestWorkspaces(t *testing.T, baseURL string, now func() time.Time) *Workspaces {
	t.Helper()
	client, err := apiclient.New(apiclient.Options{BaseURL: baseURL})
	require.NoError(t, err)
	ws, err := NewWorkspaces(WorkspacesOptions{
		Client:      client,
		Auth:        authmocks.NewFakeAuthAPI(),
		Store:       authmocks.NewMemorySessionStore(),
		IdleTimeout: time.Minute,
		Now:         now,
	})
	require.NoError(t, err)
	return ws
}

func TestNewWorkspaces_RequiresDependencies(t *testing.T) {
	client, err := apiclient.New(apiclient.Options{BaseURL: "http://localhost:4000/api"})
	require.NoError(t, err)

	_, err = NewWorkspaces(WorkspacesOptions{Auth: authmocks.NewFakeAuthAPI(), Store: authmocks.NewMemorySessionStore()})
	require.Error(t, err)
	_, err = NewWorkspaces(WorkspacesOptions{Client: client, Store: authmocks.NewMemorySessionStore()})
	require.Error(t, err)
	_, err = NewWorkspaces(WorkspacesOptions{Client: client, Auth: authmocks.NewFakeAuthAPI()})
	require.Error(t, err)
}

func TestWorkspaces_GetIsPerSession(t *testing.T) {
	ws := newTestWorkspaces(t, "http://localhost:4000/api", nil)

	a1 := ws.Get("a")
	a2 := ws.Get("a")
	b := ws.Get("b")

	assert.Same(t, a1, a2)
	assert.NotSame(t, a1.Cache, b.Cache, "sessions never share a cache")
	assert.Equal(t, "a", a1.Session.ID())
	assert.Equal(t, 2, ws.Len())

	ws.Forget("a")
	assert.Equal(t, 1, ws.Len())
	assert.NotSame(t, a1, ws.Get("a"))
}

func TestWorkspaces_SweepEvictsIdle(t *testing.T) {
	now := testutil.TestTime()
	clock := func() time.Time { return now }
	ws := newTestWorkspaces(t, "http://localhost:4000/api", clock)

	ws.Get("old")
	now = now.Add(50 * time.Second)
	ws.Get("recent")

	removed := ws.Sweep(now.Add(30 * time.Second))
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, ws.Len())
}

func TestWorkspaces_RunSweeperStopsOnCancel(t *testing.T) {
	ws := newTestWorkspaces(t, "http://localhost:4000/api", nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		ws.RunSweeper(ctx, time.Millisecond)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestWorkspace_ShopForwardsSessionBearer(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"_id": "p1", "name": "سیب", "price": 1000}},
		})
	}))
	defer srv.Close()

	ws := newTestWorkspaces(t, srv.URL+"/api", nil)
	w := ws.Get("sid")
	_, err := w.Session.Login(context.Background(), "admin@example.com", "secret")
	require.NoError(t, err)

	products, err := w.Shop.Products.List(context.Background(), ports.Filters{})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].Key())
	assert.Equal(t, "Bearer tok-admin", gotAuth)
}
