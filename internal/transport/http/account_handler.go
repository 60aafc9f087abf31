package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Hotel_Checkin_BackEnd/internal/service"
	"github.com/njprem/Hotel_Checkin_BackEnd/internal/util"
)

type AccountHandler struct {
	auth     *service.AuthService
	sessions *service.SessionManager
	cookies  *util.CookieCodec
}

func RegisterAccount(e *echo.Echo, auth *service.AuthService, sessions *service.SessionManager, cookies *util.CookieCodec, requireSession echo.MiddlewareFunc) {
	h := &AccountHandler{auth: auth, sessions: sessions, cookies: cookies}

	me := e.Group("/me", requireSession)
	me.GET("", h.getProfile)
	me.PUT("", h.updateProfile)
	me.DELETE("", h.deleteAccount)

	sessionsGroup := e.Group("/sessions", requireSession)
	sessionsGroup.GET("", h.listSessions)
	sessionsGroup.DELETE("/:id/revoke", h.revokeSession)
}

func (h *AccountHandler) getProfile(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	profile, err := h.auth.GetProfile(c.Request().Context(), user.ID)
	if err != nil {
		return writeAuthError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"user": profile})
}

func (h *AccountHandler) updateProfile(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	var req ProfileRequest
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	profile, err := h.auth.UpdateProfile(c.Request().Context(), user.ID, service.ProfileInput{
		Name:   req.Name,
		Avatar: req.Avatar,
	})
	if err != nil {
		return writeAuthError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"user": profile})
}

func (h *AccountHandler) deleteAccount(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	if err := h.auth.DeleteAccount(c.Request().Context(), user.ID); err != nil {
		return writeAuthError(c, err)
	}
	c.SetCookie(h.cookies.BlankCookie())
	return c.NoContent(http.StatusNoContent)
}

func (h *AccountHandler) listSessions(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	current, _ := CurrentSession(c)

	sessions, err := h.sessions.ListSessions(c.Request().Context(), user.ID)
	if err != nil {
		log.Printf("list sessions for user %s: %v", user.ID, err)
		return c.JSON(http.StatusInternalServerError, util.Error("unable to list sessions"))
	}
	out := make([]SessionView, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, SessionView{
			ID:         s.ID,
			DeviceInfo: s.DeviceInfo,
			ExpiresAt:  s.ExpiresAt,
			CreatedAt:  s.CreatedAt,
			Current:    current != nil && current.ID == s.ID,
		})
	}
	return c.JSON(http.StatusOK, util.Envelope{"sessions": out})
}

func (h *AccountHandler) revokeSession(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	id := c.Param("id")
	if err := h.sessions.RevokeSession(c.Request().Context(), user.ID, id); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		}
		log.Printf("revoke session for user %s: %v", user.ID, err)
		return c.JSON(http.StatusInternalServerError, util.Error("unable to revoke session"))
	}
	if current, ok := CurrentSession(c); ok && current.ID == id {
		c.SetCookie(h.cookies.BlankCookie())
	}
	return c.NoContent(http.StatusNoContent)
}
