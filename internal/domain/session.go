package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is a server-side login. ID is the SHA-256 hex digest of the raw token
// held by the client; the raw token itself is never persisted.
type Session struct {
	ID         string    `db:"id" json:"id"`
	UserID     uuid.UUID `db:"user_id" json:"user_id"`
	ExpiresAt  time.Time `db:"expires_at" json:"expires_at"`
	DeviceInfo *string   `db:"device_info" json:"device_info,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`

	// Fresh marks a session that was created or renewed by the current call,
	// so the transport re-issues the cookie with the new expiry.
	Fresh bool `db:"-" json:"-"`
}

// SessionWithUser is the joined row returned when a token is looked up.
type SessionWithUser struct {
	Session Session
	User    User
}
