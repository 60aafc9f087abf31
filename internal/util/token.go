package util

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/njprem/Hotel_Checkin_BackEnd/internal/domain"
)

// Claims is implemented by every payload the TokenCodec signs. The codec owns
// the registered time claims and writes them through Registered.
type Claims interface {
	jwt.Claims
	Registered() *jwt.RegisteredClaims
}

// SessionClaims wrap a raw session token for clients that cannot hold cookies.
type SessionClaims struct {
	SessionToken string `json:"session_token"`
	jwt.RegisteredClaims
}

func (c *SessionClaims) Registered() *jwt.RegisteredClaims { return &c.RegisteredClaims }

// CheckinClaims cache the booking and hotel state a guest was granted access with.
type CheckinClaims struct {
	Booking domain.CheckinBooking `json:"booking"`
	Hotel   domain.CheckinHotel   `json:"hotel"`
	jwt.RegisteredClaims
}

func (c *CheckinClaims) Registered() *jwt.RegisteredClaims { return &c.RegisteredClaims }

func (c *CheckinClaims) Snapshot() domain.CheckinSnapshot {
	return domain.CheckinSnapshot{Booking: c.Booking, Hotel: c.Hotel}
}

type TokenCodec struct {
	now func() time.Time
}

func NewTokenCodec() *TokenCodec {
	return &TokenCodec{now: time.Now}
}

// WithClock returns a codec that reads the current time from now.
func (c *TokenCodec) WithClock(now func() time.Time) *TokenCodec {
	return &TokenCodec{now: now}
}

// Encode signs claims with HS256 and an expiry of now+ttl.
func (c *TokenCodec) Encode(claims Claims, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("token secret is empty")
	}
	if ttl <= 0 {
		return "", errors.New("token ttl must be positive")
	}
	now := c.now()
	registered := claims.Registered()
	registered.IssuedAt = jwt.NewNumericDate(now)
	registered.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Decode verifies the signature and expiry of signed and fills claims.
// It reports false for any malformed, forged or expired token.
func (c *TokenCodec) Decode(signed string, secret string, claims Claims) bool {
	if signed == "" || secret == "" {
		return false
	}
	token, err := jwt.ParseWithClaims(signed, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return false
	}
	return token.Valid
}
