package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("jwtx: token expired")
	ErrTokenInvalid = errors.New("jwtx: token invalid")
)

// Claims is the session token payload. Subject is the user id; SessionID is
// a per-login ULID so individual sessions can be distinguished in logs.
type Claims struct {
	SessionID string `json:"sid,omitempty"`

	jwt.RegisteredClaims
}

// ValidateExpiry reports whether the token is still within its lifetime.
func (c Claims) ValidateExpiry() error {
	if c.ExpiresAt == nil || time.Now().After(c.ExpiresAt.Time) {
		return ErrTokenExpired
	}
	return nil
}

// NewClaims builds session claims for a user with the given TTL.
func NewClaims(issuer, userID, sessionID string, ttl time.Duration) Claims {
	now := time.Now()
	return Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}
