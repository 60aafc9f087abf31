package util

import (
	"net/http"
	"time"
)

const SessionCookieName = "auth_app_session"

// CookieCodec builds the Set-Cookie values carrying the raw session token.
type CookieCodec struct {
	secure bool
	ttl    time.Duration
	now    func() time.Time
}

func NewCookieCodec(secure bool, ttl time.Duration) *CookieCodec {
	return &CookieCodec{secure: secure, ttl: ttl, now: time.Now}
}

func (c *CookieCodec) WithClock(now func() time.Time) *CookieCodec {
	return &CookieCodec{secure: c.secure, ttl: c.ttl, now: now}
}

func (c *CookieCodec) SessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  c.now().Add(c.ttl).UTC(),
		Secure:   c.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// BlankCookie clears the session cookie on the client.
func (c *CookieCodec) BlankCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   c.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
