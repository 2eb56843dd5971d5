package utils

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if strings.Contains(hash, "correct horse") {
		t.Fatal("hash contains the plaintext")
	}
	if !VerifyPassword(hash, "correct horse") {
		t.Error("VerifyPassword rejected the right password")
	}
	if VerifyPassword(hash, "wrong horse") {
		t.Error("VerifyPassword accepted a wrong password")
	}
	if VerifyPassword("not-a-hash", "correct horse") {
		t.Error("VerifyPassword accepted a malformed hash")
	}
}

func TestHashPasswordIsSalted(t *testing.T) {
	a, _ := HashPassword("same-password", bcrypt.MinCost)
	b, _ := HashPassword("same-password", bcrypt.MinCost)
	if a == b {
		t.Error("two hashes of the same password are identical")
	}
}

func TestHashPasswordLongerThanBcryptLimit(t *testing.T) {
	long := strings.Repeat("p", 80)
	hash, err := HashPassword(long, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword(80 bytes): %v", err)
	}
	if !VerifyPassword(hash, long) {
		t.Error("VerifyPassword rejected the right long password")
	}
	// Bytes past the 72nd must still matter.
	if VerifyPassword(hash, strings.Repeat("p", 79)+"q") {
		t.Error("VerifyPassword accepted a password differing after byte 72")
	}
	if VerifyPassword(hash, long[:bcryptMaxBytes]) {
		t.Error("VerifyPassword accepted the 72-byte prefix")
	}

	// Multi-byte runes: 30 runes, 90 bytes.
	wide := strings.Repeat("ñé€", 10)
	if _, err := HashPassword(wide, bcrypt.MinCost); err != nil {
		t.Errorf("HashPassword(%d bytes of multi-byte runes): %v", len(wide), err)
	}
}
