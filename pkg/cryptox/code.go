package cryptox

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Invite codes default to 6 characters drawn from digits and uppercase
// letters (~36^6 combinations). That is deliberately short: codes are
// short-lived and redeem endpoints are rate limited. Callers with stricter
// needs supply their own generator.
const (
	codeCharset       = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	DefaultCodeLength = 6
)

// GenerateInviteCode creates a random invite code of n characters using a
// cryptographically strong source.
func GenerateInviteCode(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("code length must be positive, got %d", n)
	}

	code := make([]byte, n)
	for i := range code {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeCharset))))
		if err != nil {
			return "", fmt.Errorf("failed to generate invite code: %w", err)
		}
		code[i] = codeCharset[idx.Int64()]
	}
	return string(code), nil
}
