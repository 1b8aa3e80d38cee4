package httpx

import (
	"net/http"
	"time"
)

// SetScopedCookie writes an HttpOnly cookie scoped to the whole site with an
// explicit expiry. Lax is enough here: the cookie only stages an invite code
// and carries its own MAC.
func SetScopedCookie(w http.ResponseWriter, name, value string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie overwrites the named cookie with an empty value and an
// immediately-past expiry so the client discards it.
func ClearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadCookie returns the named cookie's value, or "" when absent.
func ReadCookie(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
