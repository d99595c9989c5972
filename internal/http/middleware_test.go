package httpx

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/shop-admin/internal/ports"
)

func TestRequireAuthBrowser_NoCookieRedirectsToLogin(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, request{Path: "/products?page=2", Anonymous: true})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?redirect_uri="+url.QueryEscape("/products?page=2"), w.Header().Get("Location"))
}

func TestRequireAuthBrowser_HTMXGetsHXRedirect(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, request{Path: "/orders", Anonymous: true, HTMX: true})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Hx-Redirect"), "/login"))
	assert.Empty(t, w.Body.String())
}

func TestRequireAuthBrowser_RejectedTokenExpiresSession(t *testing.T) {
	env := newTestEnv(t)
	env.workspaces.store.Put("stale", ports.StoredSession{Token: "revoked"})

	w := env.do(t, request{
		Path:      "/",
		Anonymous: true,
		Cookies:   []*http.Cookie{{Name: DefaultSessionCookieName, Value: "stale"}},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Contains(t, env.workspaces.forgets, "stale")
	assert.NotNil(t, flashFrom(w), "the login page explains the logout")
	assert.Empty(t, env.workspaces.store.Snapshot("stale").Token)
}

func TestRequireAuthBrowser_PassesWorkspaceThrough(t *testing.T) {
	env := newTestEnv(t)
	wss := env.workspaces
	var seen bool
	h := RequireAuthBrowser(wss, SessionCookie{}, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, ok := GetWorkspaceFromContext(r.Context())
		seen = ok && ws.Session.IsAuthenticated()
		s := GetSessionFromContext(r.Context())
		require.NotNil(t, s)
		assert.Equal(t, "admin@example.com", s.User.Email)
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: DefaultSessionCookieName, Value: testSID})
	h.ServeHTTP(httptest.NewRecorder(), r)

	assert.True(t, seen)
}

func TestCSRFProtection(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, GetCSRFToken(r))
	})
	h := CSRFProtection(CSRFConfig{})(next)

	t.Run("safe method issues a token", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var issued *http.Cookie
		for _, c := range w.Result().Cookies() {
			if c.Name == DefaultCSRFCookieName {
				issued = c
			}
		}
		require.NotNil(t, issued)
		assert.Equal(t, issued.Value, w.Body.String())
	})

	t.Run("post without token is rejected", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/products", nil)
		r.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: testCSRF})
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("header token is accepted", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/products", nil)
		r.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: testCSRF})
		r.Header.Set(DefaultCSRFHeaderName, testCSRF)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("form field token is accepted", func(t *testing.T) {
		form := url.Values{DefaultCSRFCookieName: {testCSRF}}
		r := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(form.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		r.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: testCSRF})
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("mismatched token is rejected", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/products", nil)
		r.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: testCSRF})
		r.Header.Set(DefaultCSRFHeaderName, "other")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestCompression(t *testing.T) {
	body := strings.Repeat("<tr><td>محصول</td></tr>", 200)
	h := Compression(CompressionConfig{MinSize: 512})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, body)
	}))

	t.Run("gzip when accepted", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Accept-Encoding", "gzip, br")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		require.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
		zr, err := gzip.NewReader(w.Body)
		require.NoError(t, err)
		got, err := io.ReadAll(zr)
		require.NoError(t, err)
		assert.Equal(t, body, string(got))
	})

	t.Run("identity when refused", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Accept-Encoding", "gzip;q=0")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Empty(t, w.Header().Get("Content-Encoding"))
		assert.Equal(t, body, w.Body.String())
	})
}

func TestRecover(t *testing.T) {
	h := Recover(discardLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
