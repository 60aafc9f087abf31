package service

import (
	"log"
	"time"
)

type SessionConfig struct {
	// TTL is the session lifetime. Sessions are renewed once less than half remains.
	TTL time.Duration
	// MaxActive caps concurrent sessions per user.
	MaxActive int
	// BearerTTL is the lifetime of the signed wrapper token handed to non-cookie clients.
	BearerTTL   time.Duration
	TokenSecret string
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		TTL:       30 * 24 * time.Hour,
		MaxActive: 3,
		BearerTTL: 30 * 24 * time.Hour,
	}
}

type CheckinConfig struct {
	TokenSecret string
	TokenTTL    time.Duration
	// Window is how long before the check-in date guests may start.
	Window time.Duration
}

func DefaultCheckinConfig() CheckinConfig {
	return CheckinConfig{
		TokenTTL: 20 * time.Minute,
		Window:   48 * time.Hour,
	}
}

type AccountConfig struct {
	VerifyEmail      bool
	VerificationTTL  time.Duration
	PasswordResetTTL time.Duration
	ResendThrottle   time.Duration
	FrontendURL      string
}

func DefaultAccountConfig() AccountConfig {
	return AccountConfig{
		VerifyEmail:      true,
		VerificationTTL:  10 * time.Hour,
		PasswordResetTTL: 2 * time.Hour,
		ResendThrottle:   5 * time.Minute,
	}
}

// Logger receives internal failures that are hidden from clients.
// *log.Logger satisfies it.
type Logger interface {
	Printf(format string, v ...any)
}

func defaultLogger(l Logger) Logger {
	if l == nil {
		return log.Default()
	}
	return l
}
