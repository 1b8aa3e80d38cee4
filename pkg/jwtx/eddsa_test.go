package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	t.Parallel()

	kp, err := NewEphemeralKeyPair()
	require.NoError(t, err)
	require.True(t, kp.IsReady())

	claims := NewClaims("gatehouse", "user-1", "session-1", time.Minute)
	token, err := kp.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := kp.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", got.Subject)
	require.Equal(t, "session-1", got.SessionID)
	require.Equal(t, "gatehouse", got.Issuer)
	require.NoError(t, got.ValidateExpiry())
}

func TestVerifyRejectsForeignKey(t *testing.T) {
	t.Parallel()

	a, err := NewEphemeralKeyPair()
	require.NoError(t, err)
	b, err := NewEphemeralKeyPair()
	require.NoError(t, err)

	token, err := a.Sign(NewClaims("gatehouse", "user-1", "s", time.Minute))
	require.NoError(t, err)

	_, err = b.Verify(token)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestExpiredTokenFailsValidation(t *testing.T) {
	t.Parallel()

	kp, err := NewEphemeralKeyPair()
	require.NoError(t, err)

	claims := NewClaims("gatehouse", "user-1", "s", -time.Minute)
	token, err := kp.Sign(claims)
	require.NoError(t, err)

	// golang-jwt enforces exp at parse time as well.
	_, err = kp.Verify(token)
	require.ErrorIs(t, err, ErrTokenInvalid)
	require.ErrorIs(t, claims.ValidateExpiry(), ErrTokenExpired)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	t.Parallel()

	kp, err := NewEphemeralKeyPair()
	require.NoError(t, err)

	_, err = kp.Verify("not.a.jwt")
	require.ErrorIs(t, err, ErrTokenInvalid)
}
