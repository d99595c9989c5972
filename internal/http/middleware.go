package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"
	"time"

	"github.com/target/shop-admin/internal/observability/metrics"
	"github.com/target/shop-admin/internal/service"
)

// Logging returns a middleware that logs HTTP requests and responses and
// reports them to sink. sink may be nil.
func Logging(logger *slog.Logger, sink metrics.Sink) func(http.Handler) http.Handler {
	sink = metrics.OrNoop(sink)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			elapsed := time.Since(start)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", elapsed),
				slog.Bool("htmx", IsHTMX(r)),
			)
			metrics.EmitRequest(sink, r.Method, routeLabel(r.URL.Path), ww.status, elapsed)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *respWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.status = status
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *respWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// routeLabel collapses a request path to its top-level section so metric
// label values stay bounded.
func routeLabel(path string) string {
	seg := strings.Trim(path, "/")
	if i := strings.IndexByte(seg, '/'); i >= 0 {
		seg = seg[:i]
	}
	if seg == "" {
		return "/"
	}
	switch seg {
	case "login", "logout", "healthz", "metrics", "static":
		return "/" + seg
	}
	for _, item := range Navigation {
		if item.Path == "/"+seg {
			return item.Path
		}
	}
	return "other"
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// WorkspaceProvider resolves the per-browser workspace for a session cookie.
// *service.Workspaces satisfies it.
type WorkspaceProvider interface {
	Get(sid string) *service.Workspace
	Forget(sid string)
}

var _ WorkspaceProvider = (*service.Workspaces)(nil)

// SessionCookie describes the cookie that carries the browser session id.
type SessionCookie struct {
	Name   string
	Domain string
	// Secure forces the Secure attribute; otherwise it follows the request scheme.
	Secure bool
	TTL    time.Duration
}

// DefaultSessionCookieName is used when SessionCookie.Name is empty.
const DefaultSessionCookieName = "shopadmin_sid"

func (c SessionCookie) name() string {
	if c.Name == "" {
		return DefaultSessionCookieName
	}
	return c.Name
}

func (c SessionCookie) read(r *http.Request) string {
	ck, err := r.Cookie(c.name())
	if err != nil {
		return ""
	}
	return strings.TrimSpace(ck.Value)
}

func (c SessionCookie) write(w http.ResponseWriter, r *http.Request, sid string) {
	maxAge := 0
	if c.TTL > 0 {
		maxAge = int(c.TTL.Seconds())
	}
	http.SetCookie(w, &http.Cookie{
		Name:     c.name(),
		Value:    sid,
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   c.Secure || isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

func (c SessionCookie) clear(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name(),
		Value:    "",
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   c.Secure || isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
	})
}

// RequireAuthBrowser returns a middleware that resolves the operator's
// workspace, hydrates its session and redirects to the login page when the
// browser holds no usable token. htmx requests get HX-Redirect instead of 303.
func RequireAuthBrowser(provider WorkspaceProvider, cookie SessionCookie, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := cookie.read(r)
			if sid == "" {
				redirectToLogin(w, r)
				return
			}
			ws := provider.Get(sid)
			if err := ws.Session.Hydrate(r.Context()); err != nil {
				if errors.Is(err, service.ErrSessionExpired) {
					provider.Forget(sid)
					setFlash(w, r, sessionExpiredToast())
					redirectToLogin(w, r)
					return
				}
				// Transient failure: keep the token and let the next request retry.
				logger.WarnContext(r.Context(), "session hydrate failed", "error", err)
			}
			if !ws.Session.IsAuthenticated() {
				redirectToLogin(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(SetWorkspaceInContext(r.Context(), ws)))
		})
	}
}

// redirectToLogin sends the browser to the login page with the current URL as redirect_uri.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := redirectPathForRequest(r)
	loginURL := "/login"
	if target != "/" {
		loginURL += "?redirect_uri=" + url.QueryEscape(target)
	}

	if IsHTMX(r) {
		SetHXRedirect(w, loginURL)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, loginURL, http.StatusSeeOther)
}

func redirectPathForRequest(r *http.Request) string {
	if IsHTMX(r) {
		if current := safeRedirectFromURL(HXCurrentURL(r)); current != "/" {
			return current
		}
		if referer := safeRedirectFromURL(r.Header.Get("Referer")); referer != "/" {
			return referer
		}
	}
	if r.Method != http.MethodGet {
		return "/"
	}
	return safeRedirectPath(r.URL.RequestURI())
}

func safeRedirectFromURL(raw string) string {
	if raw == "" {
		return "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "/"
	}
	// Reject scheme-relative or host-only references.
	if u.Host != "" && !u.IsAbs() {
		return "/"
	}
	// For absolute URLs, keep just the path and query so redirects stay in the app.
	if u.IsAbs() {
		return safeRedirectPath(u.RequestURI())
	}
	return safeRedirectPath(raw)
}

// safeRedirectPath ensures the provided redirect is a same-origin relative path
// starting with "/" and not an absolute URL. Returns "/" when invalid.
func safeRedirectPath(candidate string) string {
	if candidate == "" {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") ||
		strings.HasPrefix(candidate, "//") || strings.HasPrefix(u.Path, "/login") {
		return "/"
	}
	return candidate
}

// isSecureRequest reports whether the request arrived over HTTPS, directly or
// through a proxy that sets X-Forwarded-Proto.
func isSecureRequest(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	for _, proto := range strings.Split(r.Header.Get("X-Forwarded-Proto"), ",") {
		if strings.EqualFold(strings.TrimSpace(proto), "https") {
			return true
		}
	}
	return false
}
