package utils

import (
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the work factor used when none is configured.
const DefaultBcryptCost = 10

// bcryptMaxBytes is the longest input bcrypt accepts.
const bcryptMaxBytes = 72

// bcryptInput returns what is fed to bcrypt for plain. Passwords bcrypt
// would refuse are reduced to the base64 of their SHA-256 first, so every
// byte still counts.
func bcryptInput(plain string) []byte {
	if len(plain) <= bcryptMaxBytes {
		return []byte(plain)
	}
	sum := sha256.Sum256([]byte(plain))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

// HashPassword returns bcrypt hash using the given cost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword(bcryptInput(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares bcrypt hash and plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), bcryptInput(plain)) == nil
}
