package util

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base32"
	"encoding/hex"
	"strings"
)

const sessionTokenBytes = 20

var lowerBase32 = base32.NewEncoding("abcdefghijklmnopqrstuvwxyz234567").WithPadding(base32.NoPadding)

// Crypto is the randomness and digest capability used for session tokens and
// emailed codes.
type Crypto interface {
	RandomToken() (string, error)
	HashToken(raw string) string
}

type DefaultCrypto struct{}

func NewCrypto() DefaultCrypto {
	return DefaultCrypto{}
}

// RandomToken returns 160 bits from crypto/rand as lowercase base32.
func (DefaultCrypto) RandomToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return lowerBase32.EncodeToString(buf), nil
}

func (DefaultCrypto) HashToken(raw string) string {
	return HashToken(raw)
}

// HashToken returns the hex-encoded SHA-256 digest of raw.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// TokenHashEqual compares raw against a stored digest in constant time.
func TokenHashEqual(raw, storedHash string) bool {
	candidate := HashToken(raw)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(strings.ToLower(storedHash))) == 1
}
