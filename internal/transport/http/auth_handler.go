package http

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Hotel_Checkin_BackEnd/internal/service"
	"github.com/njprem/Hotel_Checkin_BackEnd/internal/util"
)

type AuthHandler struct {
	auth     *service.AuthService
	sessions *service.SessionManager
	cookies  *util.CookieCodec
}

// RegisterAuth mounts the account endpoints under /auth. None of them require
// a session; logout reads the token itself.
func RegisterAuth(e *echo.Echo, auth *service.AuthService, sessions *service.SessionManager, cookies *util.CookieCodec, limiter echo.MiddlewareFunc) {
	h := &AuthHandler{auth: auth, sessions: sessions, cookies: cookies}

	g := e.Group("/auth")
	if limiter != nil {
		g.Use(limiter)
	}
	g.POST("/register", h.register)
	g.POST("/login", h.login)
	g.POST("/google", h.loginWithGoogle)
	g.POST("/logout", h.logout)
	g.GET("/verify-email", h.verifyEmail)
	g.POST("/resend-verification", h.resendVerification)
	g.POST("/forgot-password", h.forgotPassword)
	g.POST("/reset-password", h.resetPassword)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req RegisterRequest
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	user, err := h.auth.Register(c.Request().Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		return writeAuthError(c, err)
	}
	return c.JSON(http.StatusCreated, util.Envelope{"user": user})
}

func (h *AuthHandler) login(c echo.Context) error {
	var req LoginRequest
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	result, err := h.auth.Login(c.Request().Context(), req.Email, req.Password, c.Request().UserAgent())
	if err != nil {
		return writeAuthError(c, err)
	}
	return h.writeLogin(c, result)
}

func (h *AuthHandler) loginWithGoogle(c echo.Context) error {
	var req GoogleLoginRequest
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	result, err := h.auth.LoginWithGoogle(c.Request().Context(), req.IDToken, c.Request().UserAgent())
	if err != nil {
		return writeAuthError(c, err)
	}
	return h.writeLogin(c, result)
}

func (h *AuthHandler) writeLogin(c echo.Context, result *service.LoginResult) error {
	c.SetCookie(h.cookies.SessionCookie(result.SessionToken))
	return c.JSON(http.StatusOK, LoginResponse{
		User:       result.User,
		Token:      result.BearerToken,
		ExpiresAt:  result.BearerExpiresAt,
		SessionExp: result.Session.ExpiresAt,
	})
}

func (h *AuthHandler) logout(c echo.Context) error {
	token := sessionToken(c, h.sessions)
	if err := h.auth.Logout(c.Request().Context(), token); err != nil {
		if errors.Is(err, service.ErrNoActiveSession) {
			return c.JSON(http.StatusUnauthorized, util.Error(err.Error()))
		}
		log.Printf("logout: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("unable to log out"))
	}
	c.SetCookie(h.cookies.BlankCookie())
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) verifyEmail(c echo.Context) error {
	code := strings.TrimSpace(c.QueryParam("code"))
	if code == "" {
		return c.JSON(http.StatusBadRequest, util.Error("code is required"))
	}
	user, err := h.auth.VerifyEmail(c.Request().Context(), code)
	if err != nil {
		return writeAuthError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"user": user})
}

func (h *AuthHandler) resendVerification(c echo.Context) error {
	var req EmailRequest
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	if err := h.auth.ResendVerification(c.Request().Context(), req.Email); err != nil {
		return writeAuthError(c, err)
	}
	return c.JSON(http.StatusOK, util.Message("if the account exists and is not verified, a new email was sent"))
}

func (h *AuthHandler) forgotPassword(c echo.Context) error {
	var req EmailRequest
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	if err := h.auth.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return writeAuthError(c, err)
	}
	return c.JSON(http.StatusOK, util.Message("if the account exists, a reset email was sent"))
}

func (h *AuthHandler) resetPassword(c echo.Context) error {
	code := strings.TrimSpace(c.QueryParam("code"))
	if code == "" {
		return c.JSON(http.StatusBadRequest, util.Error("code is required"))
	}
	var req ResetPasswordRequest
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	if err := h.auth.ResetPassword(c.Request().Context(), code, req.Password); err != nil {
		return writeAuthError(c, err)
	}
	c.SetCookie(h.cookies.BlankCookie())
	return c.JSON(http.StatusOK, util.Message("password updated"))
}

func writeAuthError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidGoogleToken):
		return c.JSON(http.StatusUnauthorized, util.Error(err.Error()))
	case errors.Is(err, service.ErrEmailNotVerified),
		errors.Is(err, service.ErrPasswordLoginUnavailable):
		return c.JSON(http.StatusForbidden, util.Error(err.Error()))
	case errors.Is(err, service.ErrEmailAlreadyUsed),
		errors.Is(err, service.ErrPendingVerification),
		errors.Is(err, service.ErrEmailAlreadyVerified):
		return c.JSON(http.StatusConflict, util.Error(err.Error()))
	case errors.Is(err, service.ErrPasswordTooWeak),
		errors.Is(err, service.ErrInvalidCode),
		errors.Is(err, service.ErrInvalidField):
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	case errors.Is(err, service.ErrThrottled):
		return c.JSON(http.StatusTooManyRequests, util.Error(err.Error()))
	case errors.Is(err, service.ErrGoogleLoginDisabled):
		return c.JSON(http.StatusNotImplemented, util.Error(err.Error()))
	case errors.Is(err, service.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, util.Error(err.Error()))
	default:
		log.Printf("auth: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("internal error"))
	}
}

