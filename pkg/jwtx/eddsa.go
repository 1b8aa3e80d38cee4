package jwtx

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Signer mints signed session tokens.
type Signer interface {
	Sign(c Claims) (string, error)
}

// Verifier checks a token's signature and returns its claims.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// KeyPair holds an Ed25519 signing key and implements both Signer and
// Verifier. Keys are ephemeral: sessions do not survive a restart, which is
// acceptable for this service's boundary-stub session handling.
type KeyPair struct {
	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
}

// NewEphemeralKeyPair generates a fresh Ed25519 key pair.
func NewEphemeralKeyPair() (*KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session key: %w", err)
	}
	return &KeyPair{priv: priv, pub: pub}, nil
}

func (k *KeyPair) Sign(c Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, c)
	signed, err := token.SignedString(k.priv)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (k *KeyPair) Verify(raw string) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodEd25519); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return k.pub, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrTokenInvalid
	}
	return claims, nil
}

// IsReady reports whether key material is loaded.
func (k *KeyPair) IsReady() bool {
	return len(k.priv) == ed25519.PrivateKeySize
}
