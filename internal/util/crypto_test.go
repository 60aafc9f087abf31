package util

import (
	"regexp"
	"testing"
)

func TestRandomTokenIsUniqueAndURLSafe(t *testing.T) {
	c := NewCrypto()
	seen := make(map[string]struct{})
	pattern := regexp.MustCompile(`^[a-z2-7]{32}$`)
	for i := 0; i < 50; i++ {
		token, err := c.RandomToken()
		if err != nil {
			t.Fatalf("RandomToken returned error: %v", err)
		}
		if !pattern.MatchString(token) {
			t.Fatalf("unexpected token format %q", token)
		}
		if _, dup := seen[token]; dup {
			t.Fatalf("duplicate token generated: %q", token)
		}
		seen[token] = struct{}{}
	}
}

func TestHashTokenDeterministic(t *testing.T) {
	raw := "abc123"
	first := HashToken(raw)
	if first != HashToken(raw) {
		t.Fatalf("expected hash to be deterministic")
	}
	if first == raw {
		t.Fatalf("expected hash to differ from raw token")
	}
	if len(first) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(first))
	}
	// sha256("abc123")
	if first != "6ca13d52ca70c883e0f0bb101e425a89e8624de51db2d2392593af6a84118090" {
		t.Fatalf("unexpected digest %s", first)
	}
	if NewCrypto().HashToken(raw) != first {
		t.Fatalf("expected capability to use the same digest")
	}
}

func TestTokenHashEqual(t *testing.T) {
	stored := HashToken("code-1")
	if !TokenHashEqual("code-1", stored) {
		t.Fatalf("expected matching code to compare equal")
	}
	if TokenHashEqual("code-2", stored) {
		t.Fatalf("expected different code to compare unequal")
	}
}
