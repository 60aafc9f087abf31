package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/njprem/Hotel_Checkin_BackEnd/internal/domain"
	"github.com/njprem/Hotel_Checkin_BackEnd/internal/metrics"
	"github.com/njprem/Hotel_Checkin_BackEnd/internal/repository/ports"
	"github.com/njprem/Hotel_Checkin_BackEnd/internal/util"
)

var (
	errSessionAbsent  = errors.New("session absent")
	errSessionExpired = errors.New("session expired")
)

// SessionValidationResult holds both values or neither.
type SessionValidationResult struct {
	Session *domain.Session
	User    *domain.User
}

func (r SessionValidationResult) Valid() bool {
	return r.Session != nil && r.User != nil
}

// SessionManager issues, validates and revokes opaque session tokens. Only the
// SHA-256 digest of a token is ever stored.
type SessionManager struct {
	sessions ports.SessionRepository
	crypto   util.Crypto
	codec    *util.TokenCodec
	cfg      SessionConfig
	metrics  *metrics.Metrics
	logger   Logger
	now      func() time.Time
}

func NewSessionManager(sessions ports.SessionRepository, crypto util.Crypto, codec *util.TokenCodec, cfg SessionConfig, m *metrics.Metrics, logger Logger) *SessionManager {
	defaults := DefaultSessionConfig()
	if cfg.TTL <= 0 {
		cfg.TTL = defaults.TTL
	}
	if cfg.MaxActive <= 0 {
		cfg.MaxActive = defaults.MaxActive
	}
	if cfg.BearerTTL <= 0 {
		cfg.BearerTTL = defaults.BearerTTL
	}
	if crypto == nil {
		crypto = util.NewCrypto()
	}
	if codec == nil {
		codec = util.NewTokenCodec()
	}
	return &SessionManager{
		sessions: sessions,
		crypto:   crypto,
		codec:    codec,
		cfg:      cfg,
		metrics:  m,
		logger:   defaultLogger(logger),
		now:      time.Now,
	}
}

func (s *SessionManager) Config() SessionConfig {
	return s.cfg
}

func (s *SessionManager) GenerateSessionToken() (string, error) {
	token, err := s.crypto.RandomToken()
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return token, nil
}

// CreateSession persists a session for raw. When the user already holds
// MaxActive sessions the one expiring soonest is removed first.
func (s *SessionManager) CreateSession(ctx context.Context, raw string, userID uuid.UUID, deviceInfo *string) (*domain.Session, error) {
	active, err := s.sessions.ListByUser(ctx, userID, s.cfg.MaxActive)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	evicted := 0
	if len(active) >= s.cfg.MaxActive {
		if err := s.sessions.DeleteByID(ctx, active[0].ID); err != nil {
			return nil, fmt.Errorf("evict session: %w", err)
		}
		evicted = 1
	}

	session := domain.Session{
		ID:         s.crypto.HashToken(raw),
		UserID:     userID,
		ExpiresAt:  s.now().Add(s.cfg.TTL),
		DeviceInfo: deviceInfo,
	}
	created, err := s.sessions.Insert(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	created.Fresh = true
	s.metrics.SessionCreated(evicted)
	return created, nil
}

// ValidateSessionToken never fails: absent, expired and broken sessions all
// yield an empty result. Renewed sessions come back with Fresh set.
func (s *SessionManager) ValidateSessionToken(ctx context.Context, raw string) SessionValidationResult {
	result, err := s.validate(ctx, raw)
	switch {
	case err == nil && result.Session.Fresh:
		s.metrics.SessionValidated(metrics.SessionRenewed)
	case err == nil:
		s.metrics.SessionValidated(metrics.SessionValid)
	case errors.Is(err, errSessionAbsent):
		s.metrics.SessionValidated(metrics.SessionAbsent)
	case errors.Is(err, errSessionExpired):
		s.metrics.SessionValidated(metrics.SessionExpired)
	default:
		s.metrics.SessionValidated(metrics.SessionError)
		s.logger.Printf("session: validate: %v", err)
	}
	if err != nil {
		return SessionValidationResult{}
	}
	return result
}

func (s *SessionManager) validate(ctx context.Context, raw string) (SessionValidationResult, error) {
	if raw == "" {
		return SessionValidationResult{}, errSessionAbsent
	}
	id := s.crypto.HashToken(raw)
	row, err := s.sessions.FindWithUser(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return SessionValidationResult{}, errSessionAbsent
		}
		return SessionValidationResult{}, fmt.Errorf("find session: %w", err)
	}

	now := s.now()
	session := row.Session
	if !now.Before(session.ExpiresAt) {
		if err := s.sessions.DeleteByID(ctx, id); err != nil {
			return SessionValidationResult{}, fmt.Errorf("delete expired session: %w", err)
		}
		return SessionValidationResult{}, errSessionExpired
	}

	session.Fresh = false
	if !now.Before(session.ExpiresAt.Add(-s.cfg.TTL / 2)) {
		session.ExpiresAt = now.Add(s.cfg.TTL)
		if err := s.sessions.UpdateExpiry(ctx, id, session.ExpiresAt); err != nil {
			return SessionValidationResult{}, fmt.Errorf("renew session: %w", err)
		}
		session.Fresh = true
	}

	user := row.User.WithoutCredentials()
	return SessionValidationResult{Session: &session, User: &user}, nil
}

func (s *SessionManager) InvalidateSession(ctx context.Context, raw string) error {
	if raw == "" {
		return ErrNoActiveSession
	}
	return s.sessions.DeleteByID(ctx, s.crypto.HashToken(raw))
}

func (s *SessionManager) InvalidateAllSessions(ctx context.Context, userID uuid.UUID) error {
	return s.sessions.DeleteByUser(ctx, userID)
}

func (s *SessionManager) ListSessions(ctx context.Context, userID uuid.UUID) ([]domain.Session, error) {
	return s.sessions.ListByUser(ctx, userID, s.cfg.MaxActive)
}

// RevokeSession removes one of the user's sessions by its stored id.
func (s *SessionManager) RevokeSession(ctx context.Context, userID uuid.UUID, id string) error {
	removed, err := s.sessions.DeleteByIDForUser(ctx, id, userID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrSessionNotFound
	}
	return nil
}

// IssueBearerToken wraps raw in a signed token for clients without cookies.
func (s *SessionManager) IssueBearerToken(raw string, userID uuid.UUID) (string, time.Time, error) {
	claims := &util.SessionClaims{SessionToken: raw}
	claims.Subject = userID.String()
	signed, err := s.codec.Encode(claims, s.cfg.TokenSecret, s.cfg.BearerTTL)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign bearer token: %w", err)
	}
	return signed, claims.ExpiresAt.Time, nil
}

// ResolveBearerToken extracts the raw session token from an Authorization
// header value. It returns "" for anything that is not a valid wrapper token.
func (s *SessionManager) ResolveBearerToken(header string) string {
	signed := bearerValue(header)
	if signed == "" {
		return ""
	}
	var claims util.SessionClaims
	if !s.codec.Decode(signed, s.cfg.TokenSecret, &claims) {
		return ""
	}
	return claims.SessionToken
}

func bearerValue(header string) string {
	scheme, value, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(value)
}
