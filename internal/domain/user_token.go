package domain

import (
	"time"

	"github.com/google/uuid"
)

type UserTokenType string

const (
	UserTokenVerifyEmail   UserTokenType = "verify_email"
	UserTokenResetPassword UserTokenType = "reset_password"
)

// UserToken is a single-use emailed code. CodeHash stores the SHA-256 hex of
// the code sent to the user.
type UserToken struct {
	ID        int64         `db:"id" json:"id"`
	UserID    uuid.UUID     `db:"user_id" json:"user_id"`
	TypeUse   UserTokenType `db:"type_use" json:"type_use"`
	Email     string        `db:"email" json:"email"`
	CodeHash  string        `db:"code_hash" json:"-"`
	ExpiresAt time.Time     `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
}
