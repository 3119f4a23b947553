package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// setSessionCookie attaches the signed token as an HTTP-only session cookie.
// The cookie expiry mirrors the token expiry; the token remains the source of
// truth either way.
func setSessionCookie(c echo.Context, name, token string, expiresAt time.Time, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the session cookie on the client.
func clearSessionCookie(c echo.Context, name string, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
