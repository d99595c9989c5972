package httpx

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/target/shop-admin/internal/ui"
)

// flashCookieName carries one toast across a redirect.
const flashCookieName = "flash"

// setFlash stores t for the next page render.
func setFlash(w http.ResponseWriter, r *http.Request, t ui.Toast) {
	if !t.Open || t.Message == "" {
		return
	}
	b, err := json.Marshal(t)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(b),
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   60,
	})
}

// takeFlash returns the pending toast, if any, and clears it.
func takeFlash(w http.ResponseWriter, r *http.Request) ui.Toast {
	c, err := r.Cookie(flashCookieName)
	if err != nil || c.Value == "" {
		return ui.Toast{}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	b, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return ui.Toast{}
	}
	var t ui.Toast
	if err := json.Unmarshal(b, &t); err != nil {
		return ui.Toast{}
	}
	return t
}
