package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/njprem/Hotel_Checkin_BackEnd/internal/domain"
	"github.com/njprem/Hotel_Checkin_BackEnd/internal/service"
	"github.com/njprem/Hotel_Checkin_BackEnd/internal/util"
)

const (
	contextUserKey         = "auth.user"
	contextSessionKey      = "auth.session"
	contextSessionTokenKey = "auth.session_token"
	contextCheckinKey      = "checkin.snapshot"

	HeaderCheckinToken = "X-Checkin-Token"
)

// SessionValidator is the part of the session manager the middleware needs.
type SessionValidator interface {
	ValidateSessionToken(ctx context.Context, raw string) service.SessionValidationResult
	ResolveBearerToken(header string) string
}

// CheckinResolver grants or denies public check-in access.
type CheckinResolver interface {
	Resolve(ctx context.Context, slug string, bookingID uuid.UUID, authorization string) (*service.CheckinAccess, error)
}

// OriginPolicy controls the cross-site check applied to state-changing
// requests. It is only enforced in production.
type OriginPolicy struct {
	Enforce     bool
	FrontendURL string
}

func (p OriginPolicy) allows(r *http.Request) bool {
	if !p.Enforce || r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
		return true
	}
	origin := r.Header.Get(echo.HeaderOrigin)
	host := r.Host
	if forwarded := r.Header.Get("X-Forwarded-Host"); host == "" && forwarded != "" {
		host = forwarded
	}
	if origin == "" || host == "" {
		return false
	}
	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" {
		return false
	}
	if strings.EqualFold(parsed.Host, host) {
		return true
	}
	if p.FrontendURL != "" {
		if frontend, err := url.Parse(p.FrontendURL); err == nil && strings.EqualFold(parsed.Host, frontend.Host) {
			return true
		}
	}
	return false
}

// sessionToken reads the raw session token from the cookie, falling back to
// a signed bearer wrapper in the Authorization header.
func sessionToken(c echo.Context, sessions SessionValidator) string {
	if cookie, err := c.Cookie(util.SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return sessions.ResolveBearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
}

func RequireSession(sessions SessionValidator, cookies *util.CookieCodec, origins OriginPolicy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !origins.allows(c.Request()) {
				return c.NoContent(http.StatusForbidden)
			}

			token := sessionToken(c, sessions)
			if token == "" {
				return c.JSON(http.StatusUnauthorized, util.Error("unauthorized"))
			}

			result := sessions.ValidateSessionToken(c.Request().Context(), token)
			if !result.Valid() {
				c.SetCookie(cookies.BlankCookie())
				return c.JSON(http.StatusUnauthorized, util.Error("unauthorized"))
			}
			if result.Session.Fresh {
				c.SetCookie(cookies.SessionCookie(token))
			}

			c.Set(contextUserKey, result.User)
			c.Set(contextSessionKey, result.Session)
			c.Set(contextSessionTokenKey, token)
			return next(c)
		}
	}
}

// RequireCheckinAccess resolves :slug and :bookingId into a check-in snapshot.
func RequireCheckinAccess(resolver CheckinResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			slug := c.Param("slug")
			if !slugPattern.MatchString(slug) {
				return c.JSON(http.StatusBadRequest, util.Error("invalid hotel slug"))
			}
			bookingID, err := uuid.Parse(c.Param("bookingId"))
			if err != nil {
				return c.JSON(http.StatusBadRequest, util.Error("invalid booking id"))
			}

			access, err := resolver.Resolve(c.Request().Context(), slug, bookingID, c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return writeCheckinAccessError(c, err)
			}
			if access.Token != "" {
				c.Response().Header().Set(HeaderCheckinToken, access.Token)
			}
			snapshot := access.Snapshot
			c.Set(contextCheckinKey, &snapshot)
			return next(c)
		}
	}
}

func writeCheckinAccessError(c echo.Context, err error) error {
	var denied *service.CheckinDenied
	if errors.As(err, &denied) {
		return c.JSON(denied.Status(), util.Error(denied.Reason))
	}
	log.Printf("checkin access: %v", err)
	return c.JSON(http.StatusServiceUnavailable, util.Error("check-in temporarily unavailable"))
}

func CurrentUser(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(contextUserKey).(*domain.User)
	return user, ok && user != nil
}

func CurrentSession(c echo.Context) (*domain.Session, bool) {
	session, ok := c.Get(contextSessionKey).(*domain.Session)
	return session, ok && session != nil
}

func CurrentCheckin(c echo.Context) (*domain.CheckinSnapshot, bool) {
	snapshot, ok := c.Get(contextCheckinKey).(*domain.CheckinSnapshot)
	return snapshot, ok && snapshot != nil
}
