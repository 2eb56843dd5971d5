// Package utils provides helpers for token issuing and password hashing.
package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and verifying signed tokens
)

// DefaultTokenTTL is how long an issued session token stays valid.
const DefaultTokenTTL = 24 * time.Hour

// ErrInvalidToken is returned by Verify for any token that cannot be
// trusted: bad signature, malformed payload, wrong algorithm or expired.
// Callers are deliberately not told which.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload of a session token. The subject claim mirrors
// UserID so generic JWT tooling can read it.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 session tokens. It keeps no
// state besides the key, so a token is valid exactly while its
// signature checks out and it has not expired.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService builds a TokenService. An empty secret is a
// configuration error.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// WithClock replaces the time source; used by tests to move past expiry.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// Issue signs a token for userID that expires after the configured TTL.
func (s *TokenService) Issue(userID string) (string, error) {
	iat := s.now().UTC()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(iat.Add(s.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify checks the signature and expiry of raw and returns the user id
// it was issued for.
func (s *TokenService) Verify(raw string) (string, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !tok.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
