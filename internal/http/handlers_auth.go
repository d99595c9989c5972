package httpx

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/target/shop-admin/internal/errors"
	"github.com/target/shop-admin/internal/ui"
)

// AuthHandlers serves the login form and logout. Credentials go straight to
// the shop API through the session holder; this server never sees a user table.
type AuthHandlers struct {
	Workspaces WorkspaceProvider
	T          *TemplateRenderer
	Cookie     SessionCookie
	Logger     *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// LoginPage renders the sign-in form.
// GET /login?redirect_uri=<optional_redirect>.
func (h *AuthHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	if sid := h.Cookie.read(r); sid != "" {
		ws := h.Workspaces.Get(sid)
		if err := ws.Session.Hydrate(r.Context()); err == nil && ws.Session.IsAuthenticated() {
			http.Redirect(w, r, safeRedirectPath(r.URL.Query().Get("redirect_uri")), http.StatusSeeOther)
			return
		}
	}
	h.renderLogin(w, r, loginView{RedirectURI: r.URL.Query().Get("redirect_uri")})
}

// Login handles the sign-in form.
// POST /login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	redirectURI := safeRedirectPath(r.PostFormValue("redirect_uri"))

	// A fresh id on every sign-in; the old workspace is dropped.
	if old := h.Cookie.read(r); old != "" {
		h.Workspaces.Forget(old)
	}
	sid := uuid.NewString()
	ws := h.Workspaces.Get(sid)

	user, err := ws.Session.Login(r.Context(), email, password)
	if err != nil {
		h.Workspaces.Forget(sid)
		h.logger().InfoContext(r.Context(), "login failed", "email", email, "error", err)
		view := loginView{Email: email, RedirectURI: redirectURI, Error: apperrors.UserMessage(err)}
		if IsHTMX(r) {
			HTMX(w).Toast(ui.Error(view.Error))
		}
		h.renderLogin(w, r, view)
		return
	}

	h.logger().InfoContext(r.Context(), "login", "user", user.Email, "role", user.Role)
	h.Cookie.write(w, r, sid)
	setFlash(w, r, ui.Success("خوش آمدید "+user.Name))
	if IsHTMX(r) {
		HTMX(w).Redirect(redirectURI)
		return
	}
	http.Redirect(w, r, redirectURI, http.StatusSeeOther)
}

// Logout clears the token in the API-facing session and the browser cookie.
// POST /logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sid := h.Cookie.read(r); sid != "" {
		ws := h.Workspaces.Get(sid)
		if err := ws.Session.Logout(r.Context()); err != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", err)
		}
		h.Workspaces.Forget(sid)
	}
	h.Cookie.clear(w, r)

	if IsHTMX(r) {
		HTMX(w).Redirect("/login")
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

type loginView struct {
	Email       string
	RedirectURI string
	Error       string
}

func (h *AuthHandlers) renderLogin(w http.ResponseWriter, r *http.Request, v loginView) {
	data := NewTemplateData(r, PageMeta{Title: "ورود", PageTitle: "ورود به پنل مدیریت", CurrentPage: PageLogin}).
		With("Email", v.Email).
		With("RedirectURI", v.RedirectURI).
		Build()
	data["Flash"] = takeFlash(w, r)
	status := http.StatusOK
	if v.Error != "" {
		data["Error"] = true
		data["ErrorMessage"] = v.Error
		status = http.StatusUnauthorized
		if IsHTMX(r) {
			status = http.StatusOK
		}
	}
	if err := h.T.RenderStatus(w, "login-layout", status, data); err != nil {
		h.logger().ErrorContext(r.Context(), "render login failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
