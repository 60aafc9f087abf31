package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	Email         string     `db:"email" json:"email"`
	Name          *string    `db:"name" json:"name,omitempty"`
	Avatar        *string    `db:"avatar" json:"avatar,omitempty"`
	PasswordHash  []byte     `db:"password_hash" json:"-"`
	PasswordSalt  []byte     `db:"password_salt" json:"-"`
	EmailVerified bool       `db:"email_verified" json:"email_verified"`
	LastLogin     *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// HasPassword reports whether the account can sign in with email and password.
// Accounts created through Google have no stored credential.
func (u *User) HasPassword() bool {
	return len(u.PasswordHash) > 0 && len(u.PasswordSalt) > 0
}

// WithoutCredentials returns a copy of the user with the password material removed.
func (u User) WithoutCredentials() User {
	u.PasswordHash = nil
	u.PasswordSalt = nil
	return u
}

type OAuthAccount struct {
	Provider       string    `db:"provider" json:"provider"`
	ProviderUserID string    `db:"provider_user_id" json:"provider_user_id"`
	UserID         uuid.UUID `db:"user_id" json:"user_id"`
}
