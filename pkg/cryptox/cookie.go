package cryptox

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

// ErrBadSignature reports a cookie value whose MAC does not verify.
var ErrBadSignature = errors.New("cryptox: cookie signature mismatch")

// SignValue produces "value.mac" where mac is an HMAC-SHA256 over value.
// Used for client-held state (the invite-code cookie) so a tampered value
// is rejected without a server-side session.
func SignValue(value string, key []byte) string {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(value))
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	return value + "." + sig
}

// VerifyValue splits and verifies a value produced by SignValue, returning
// the embedded value on success.
func VerifyValue(signed string, key []byte) (string, error) {
	i := strings.LastIndexByte(signed, '.')
	if i < 0 {
		return "", ErrBadSignature
	}
	value, sig := signed[:i], signed[i+1:]

	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(value))
	want := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(sig), []byte(want)) {
		return "", ErrBadSignature
	}
	return value, nil
}
