package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/idtoken"

	"github.com/njprem/Hotel_Checkin_BackEnd/internal/domain"
	"github.com/njprem/Hotel_Checkin_BackEnd/internal/repository/ports"
	"github.com/njprem/Hotel_Checkin_BackEnd/internal/util"
)

type AccountMailer interface {
	SendVerification(ctx context.Context, email, link string) error
	SendPasswordReset(ctx context.Context, email, link string) error
}

type GoogleProfile struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

type GoogleVerifier interface {
	Verify(ctx context.Context, idToken, audience string) (*GoogleProfile, error)
}

type idTokenVerifier struct{}

func (idTokenVerifier) Verify(ctx context.Context, idToken, audience string) (*GoogleProfile, error) {
	payload, err := idtoken.Validate(ctx, idToken, audience)
	if err != nil {
		return nil, err
	}
	profile := &GoogleProfile{Subject: payload.Subject}
	profile.Email, _ = payload.Claims["email"].(string)
	profile.Name, _ = payload.Claims["name"].(string)
	profile.Picture, _ = payload.Claims["picture"].(string)
	if verified, ok := payload.Claims["email_verified"].(bool); ok && !verified {
		return nil, errors.New("google email not verified")
	}
	return profile, nil
}

type RegisterInput struct {
	Email    string
	Password string
	Name     *string
}

// LoginResult carries the raw session token for the cookie and its signed
// wrapper for clients that send Authorization headers instead.
type LoginResult struct {
	User            domain.User
	Session         *domain.Session
	SessionToken    string
	BearerToken     string
	BearerExpiresAt time.Time
}

type AuthService struct {
	users    ports.UserRepository
	tokens   ports.UserTokenRepository
	sessions *SessionManager
	mailer   AccountMailer
	crypto   util.Crypto
	google   GoogleVerifier
	cfg      AccountConfig
	audience string
	logger   Logger
	now      func() time.Time
}

func NewAuthService(users ports.UserRepository, tokens ports.UserTokenRepository, sessions *SessionManager, mailer AccountMailer, cfg AccountConfig, googleAudience string, logger Logger) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		sessions: sessions,
		mailer:   mailer,
		crypto:   util.NewCrypto(),
		google:   idTokenVerifier{},
		cfg:      cfg,
		audience: strings.TrimSpace(googleAudience),
		logger:   defaultLogger(logger),
		now:      time.Now,
	}
}

// WithGoogleVerifier replaces the Google ID token verifier.
func (s *AuthService) WithGoogleVerifier(v GoogleVerifier) *AuthService {
	s.google = v
	return s
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	email := normalizeEmail(input.Email)
	if err := util.ValidatePassword(input.Password); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPasswordTooWeak, err)
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		if existing.EmailVerified || !s.cfg.VerifyEmail {
			return nil, ErrEmailAlreadyUsed
		}
		return nil, ErrPendingVerification
	}
	if !isNotFound(err) {
		return nil, err
	}

	hash, salt, err := util.DerivePassword(input.Password)
	if err != nil {
		return nil, err
	}
	user, err := s.users.CreateEmailUser(ctx, email, input.Name, hash, salt, !s.cfg.VerifyEmail)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailAlreadyUsed
		}
		return nil, err
	}

	if s.cfg.VerifyEmail {
		if err := s.sendVerification(ctx, user); err != nil {
			s.logger.Printf("auth: send verification to user %s: %v", user.ID, err)
		}
	}
	out := user.WithoutCredentials()
	return &out, nil
}

func (s *AuthService) Login(ctx context.Context, email, password, userAgent string) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.HasPassword() {
		return nil, ErrPasswordLoginUnavailable
	}
	if !util.VerifyPassword(password, user.PasswordSalt, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if s.cfg.VerifyEmail && !user.EmailVerified {
		return nil, ErrEmailNotVerified
	}
	return s.startSession(ctx, user, userAgent)
}

func (s *AuthService) LoginWithGoogle(ctx context.Context, idToken, userAgent string) (*LoginResult, error) {
	if s.audience == "" {
		return nil, ErrGoogleLoginDisabled
	}
	profile, err := s.google.Verify(ctx, idToken, s.audience)
	if err != nil || profile.Subject == "" || profile.Email == "" {
		return nil, ErrInvalidGoogleToken
	}

	account := domain.OAuthAccount{Provider: "google", ProviderUserID: profile.Subject}
	user, err := s.users.UpsertGoogleUser(ctx, account, normalizeEmail(profile.Email), optional(profile.Name), optional(profile.Picture))
	if err != nil {
		return nil, err
	}
	return s.startSession(ctx, user, userAgent)
}

func (s *AuthService) startSession(ctx context.Context, user *domain.User, userAgent string) (*LoginResult, error) {
	raw, err := s.sessions.GenerateSessionToken()
	if err != nil {
		return nil, err
	}
	device := util.DeviceInfo(userAgent)
	session, err := s.sessions.CreateSession(ctx, raw, user.ID, &device)
	if err != nil {
		return nil, err
	}
	bearer, expiresAt, err := s.sessions.IssueBearerToken(raw, user.ID)
	if err != nil {
		return nil, err
	}
	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		s.logger.Printf("auth: touch last login for user %s: %v", user.ID, err)
	}
	return &LoginResult{
		User:            user.WithoutCredentials(),
		Session:         session,
		SessionToken:    raw,
		BearerToken:     bearer,
		BearerExpiresAt: expiresAt,
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	return s.sessions.InvalidateSession(ctx, rawToken)
}

func (s *AuthService) VerifyEmail(ctx context.Context, code string) (*domain.User, error) {
	token, err := s.consumeCode(ctx, code, domain.UserTokenVerifyEmail)
	if err != nil {
		return nil, err
	}
	user, err := s.users.MarkEmailVerified(ctx, token.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCode
		}
		return nil, err
	}
	out := user.WithoutCredentials()
	return &out, nil
}

// ResendVerification is silent for unknown addresses so it cannot be used to
// probe which emails are registered.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return err
	}
	if user.EmailVerified {
		return ErrEmailAlreadyVerified
	}
	if err := s.checkThrottle(ctx, user.ID, domain.UserTokenVerifyEmail); err != nil {
		return err
	}
	return s.sendVerification(ctx, user)
}

func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return err
	}
	if err := s.checkThrottle(ctx, user.ID, domain.UserTokenResetPassword); err != nil {
		return err
	}
	code, err := s.issueCode(ctx, user, domain.UserTokenResetPassword, s.cfg.PasswordResetTTL)
	if err != nil {
		return err
	}
	if s.mailer == nil {
		return errors.New("mailer not configured")
	}
	return s.mailer.SendPasswordReset(ctx, user.Email, s.link("/reset-password", code))
}

// ResetPassword sets a new password and signs the user out everywhere.
func (s *AuthService) ResetPassword(ctx context.Context, code, newPassword string) error {
	if err := util.ValidatePassword(newPassword); err != nil {
		return fmt.Errorf("%w: %v", ErrPasswordTooWeak, err)
	}
	token, err := s.consumeCode(ctx, code, domain.UserTokenResetPassword)
	if err != nil {
		return err
	}
	hash, salt, err := util.DerivePassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, token.UserID, hash, salt); err != nil {
		if isNotFound(err) {
			return ErrInvalidCode
		}
		return err
	}
	return s.sessions.InvalidateAllSessions(ctx, token.UserID)
}

func (s *AuthService) sendVerification(ctx context.Context, user *domain.User) error {
	code, err := s.issueCode(ctx, user, domain.UserTokenVerifyEmail, s.cfg.VerificationTTL)
	if err != nil {
		return err
	}
	if s.mailer == nil {
		return errors.New("mailer not configured")
	}
	return s.mailer.SendVerification(ctx, user.Email, s.link("/verify-email", code))
}

func (s *AuthService) issueCode(ctx context.Context, user *domain.User, typeUse domain.UserTokenType, ttl time.Duration) (string, error) {
	code, err := s.crypto.RandomToken()
	if err != nil {
		return "", err
	}
	if _, err := s.tokens.Replace(ctx, user.ID, user.Email, typeUse, s.crypto.HashToken(code), s.now().Add(ttl)); err != nil {
		return "", err
	}
	return code, nil
}

// consumeCode deletes the token whether or not it is still valid.
func (s *AuthService) consumeCode(ctx context.Context, code string, typeUse domain.UserTokenType) (*domain.UserToken, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrInvalidCode
	}
	token, err := s.tokens.FindByCode(ctx, s.crypto.HashToken(code), typeUse)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCode
		}
		return nil, err
	}
	if err := s.tokens.Delete(ctx, token.ID); err != nil {
		return nil, err
	}
	if !s.now().Before(token.ExpiresAt) {
		return nil, ErrInvalidCode
	}
	return token, nil
}

func (s *AuthService) checkThrottle(ctx context.Context, userID uuid.UUID, typeUse domain.UserTokenType) error {
	latest, err := s.tokens.LatestByUser(ctx, userID, typeUse)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return err
	}
	if s.now().Sub(latest.CreatedAt) < s.cfg.ResendThrottle {
		return ErrThrottled
	}
	return nil
}

func (s *AuthService) link(path, code string) string {
	base := strings.TrimRight(s.cfg.FrontendURL, "/")
	return base + path + "?code=" + url.QueryEscape(code)
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
