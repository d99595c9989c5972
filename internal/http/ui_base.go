package httpx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/target/shop-admin/internal/apiclient"
	apperrors "github.com/target/shop-admin/internal/errors"
	"github.com/target/shop-admin/internal/service"
	"github.com/target/shop-admin/internal/table"
	"github.com/target/shop-admin/internal/ui"
)

// UIHandlers serves browser-facing routes. Everything per-operator (session,
// cache, resource clients) comes from the workspace RequireAuthBrowser put in
// the request context.
type UIHandlers struct {
	T *TemplateRenderer
	// Workspaces is used to drop a workspace whose token the API rejected. Optional.
	Workspaces WorkspaceProvider
	Sorter     table.Sorter
	Logger     *slog.Logger
	Now        func() time.Time
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *UIHandlers) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// workspace returns the request's workspace, redirecting to login when absent.
func (h *UIHandlers) workspace(w http.ResponseWriter, r *http.Request) (*service.Workspace, bool) {
	ws, ok := GetWorkspaceFromContext(r.Context())
	if !ok || ws == nil {
		redirectToLogin(w, r)
		return nil, false
	}
	return ws, true
}

// renderPage renders data as a full page, or only the content area for htmx
// navigation. A pending flash toast rides along either way.
func (h *UIHandlers) renderPage(w http.ResponseWriter, r *http.Request, data map[string]any) {
	flash := takeFlash(w, r)
	var err error
	if WantsPartial(r) {
		if flash.Open {
			HTMX(w).Toast(flash)
		}
		err = h.T.RenderPartial(w, r, data)
	} else {
		data["Flash"] = flash
		err = h.T.RenderFull(w, r, data)
	}
	if err != nil {
		h.logger().ErrorContext(r.Context(), "render page failed", "error", err, "path", r.URL.Path)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// overlayParams groups what renderOverlay needs.
type overlayParams struct {
	Data map[string]any
	// Status is applied to non-htmx renders; htmx only swaps 2xx responses.
	Status int
	Toast  ui.Toast
}

// renderOverlay renders a dialog or confirm prompt. htmx requests receive just
// the modal for #dialog; plain requests get the full layout with the modal in
// place of the page content.
func (h *UIHandlers) renderOverlay(w http.ResponseWriter, r *http.Request, p overlayParams) {
	var err error
	if IsHTMX(r) {
		if p.Toast.Open {
			HTMX(w).Toast(p.Toast)
		}
		err = h.T.RenderDialog(w, r, p.Data)
	} else {
		flash := takeFlash(w, r)
		if p.Toast.Open {
			flash = p.Toast
		}
		p.Data["Flash"] = flash
		err = h.T.RenderStatus(w, "layout", p.Status, p.Data)
	}
	if err != nil {
		h.logger().ErrorContext(r.Context(), "render dialog failed", "error", err, "path", r.URL.Path)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// redirectWithToast finishes a successful mutation: the toast is carried by
// the flash cookie and shown on the page the browser lands on.
func redirectWithToast(w http.ResponseWriter, r *http.Request, target string, t ui.Toast) {
	setFlash(w, r, t)
	target = safeRedirectPath(target)
	if IsHTMX(r) {
		HTMX(w).Redirect(target)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// isAuthFailure reports whether err means the API no longer accepts the token.
func isAuthFailure(err error) bool {
	return apiclient.IsUnauthorized(err) || apperrors.IsUnauthorized(apperrors.MapUpstreamError(err))
}

// handleAuthFailure logs the operator out after the API rejected the token
// and sends the browser to the login page.
func (h *UIHandlers) handleAuthFailure(w http.ResponseWriter, r *http.Request, ws *service.Workspace) {
	if ws != nil {
		if err := ws.Session.Logout(r.Context()); err != nil {
			h.logger().WarnContext(r.Context(), "logout after auth failure", "error", err)
		}
		if h.Workspaces != nil {
			h.Workspaces.Forget(ws.Session.ID())
		}
	}
	setFlash(w, r, sessionExpiredToast())
	redirectToLogin(w, r)
}

// errorMessage prefers the server's message and falls back to the handler's
// own wording, then to the generic fallback.
func errorMessage(err error, fallback string) string {
	msg := apperrors.UserMessage(err)
	if msg == apperrors.FallbackMessage && fallback != "" {
		return fallback
	}
	return msg
}

func sessionExpiredToast() ui.Toast { return ui.Warning(msgSessionExpired) }

// returnURL is where the browser goes after a dialog: the explicit "return"
// value, the list page htmx reports as current, or basePath.
func returnURL(r *http.Request, basePath string) string {
	if v := r.FormValue("return"); v != "" {
		if p := safeRedirectPath(v); p != "/" || v == "/" {
			return p
		}
	}
	if IsHTMX(r) {
		if p := safeRedirectFromURL(HXCurrentURL(r)); p != "/" {
			return p
		}
	}
	return basePath
}
