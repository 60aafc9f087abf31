package util

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/argon2"
)

const (
	MinPasswordLength = 8
	MaxPasswordLength = 128
)

var (
	ErrPasswordLength     = errors.New("password must be between 8 and 128 characters long")
	ErrPasswordComplexity = errors.New("password must include at least one letter and one number")
	ErrPasswordCharacters = errors.New("password must not contain control characters")
	errEmptyHashInput     = errors.New("password and salt are required")
)

// Argon2Params holds the argon2id cost settings for owner passwords. Stored
// hashes are only verifiable with the params they were derived with.
type Argon2Params struct {
	Time    uint32
	Memory  uint32
	Threads uint8
	KeyLen  uint32
	SaltLen int
}

var DefaultArgon2 = Argon2Params{Time: 1, Memory: 64 * 1024, Threads: 4, KeyLen: 32, SaltLen: 16}

func (p Argon2Params) salt() ([]byte, error) {
	salt := make([]byte, p.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	return salt, nil
}

func (p Argon2Params) key(password string, salt []byte) ([]byte, error) {
	if password == "" || len(salt) == 0 {
		return nil, errEmptyHashInput
	}
	return argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, p.KeyLen), nil
}

// ValidatePassword enforces the owner password policy.
func ValidatePassword(password string) error {
	if n := utf8.RuneCountInString(password); n < MinPasswordLength || n > MaxPasswordLength {
		return ErrPasswordLength
	}
	letter, digit := false, false
	for _, r := range password {
		if unicode.IsControl(r) {
			return ErrPasswordCharacters
		}
		letter = letter || unicode.IsLetter(r)
		digit = digit || unicode.IsDigit(r)
	}
	if !letter || !digit {
		return ErrPasswordComplexity
	}
	return nil
}

func HashPassword(password string, salt []byte) ([]byte, error) {
	return DefaultArgon2.key(password, salt)
}

// DerivePassword hashes password with a fresh random salt.
func DerivePassword(password string) (hash, salt []byte, err error) {
	if salt, err = DefaultArgon2.salt(); err != nil {
		return nil, nil, err
	}
	if hash, err = DefaultArgon2.key(password, salt); err != nil {
		return nil, nil, err
	}
	return hash, salt, nil
}

// VerifyPassword reports whether password matches the stored hash. Accounts
// created through Google have no hash and never match.
func VerifyPassword(password string, salt, expectedHash []byte) bool {
	if len(expectedHash) == 0 {
		return false
	}
	candidate, err := DefaultArgon2.key(password, salt)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(candidate, expectedHash) == 1
}
