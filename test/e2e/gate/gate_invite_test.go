package gate_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/harborchat/gatehouse/pkg/gatesdk"
)

// TestSingleUseInviteFlow walks the whole single-use lifecycle: bootstrap,
// mint, failed signup without an invite, redeem, gated signup, and the
// second redemption attempt of a spent code.
func TestSingleUseInviteFlow(t *testing.T) {
	baseURL, cleanup := setupGateContainer(t, "single", true)
	defer cleanup()

	admin := bootstrapAdmin(t, baseURL)

	invite, err := admin.CreateInvite(t.Context(), 0)
	require.NoError(t, err)
	require.Len(t, invite.Code, 6)

	alice := gatesdk.NewSDKClient(baseURL)

	// Without a staged invite the signup is refused outright.
	_, err = alice.SignUpEmail(t.Context(), "alice@example.com", "Alice", "Password1!")
	var apiErr *gatesdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, gatesdk.ErrorCodeSignupRequiresInvite, apiErr.Code)

	// Redeem plants the cookie; the following signup consumes the invite and
	// lands the account at the upgraded role.
	require.NoError(t, alice.RedeemInvite(t.Context(), invite.Code))

	sess, err := alice.SignUpEmail(t.Context(), "alice@example.com", "Alice", "Password1!")
	require.NoError(t, err)
	require.Equal(t, "member", sess.Role)

	// The freshly upgraded member can mint invites of their own.
	_, err = alice.CreateInvite(t.Context(), 0)
	require.NoError(t, err)

	// The spent code redirects any later redeemer to sign-in.
	bob := gatesdk.NewSDKClient(baseURL)
	err = bob.RedeemInvite(t.Context(), invite.Code)
	require.ErrorAs(t, err, &apiErr)
	require.Contains(t, apiErr.Description, "error=invalid_invite")
}

// TestCountedInviteFlow covers the ledger-backed mode: a multi-use code, an
// uninvited signup at the default role, and exhaustion.
func TestCountedInviteFlow(t *testing.T) {
	baseURL, cleanup := setupGateContainer(t, "counted", false)
	defer cleanup()

	admin := bootstrapAdmin(t, baseURL)

	invite, err := admin.CreateInvite(t.Context(), 2)
	require.NoError(t, err)
	require.Equal(t, 2, invite.MaxUses)

	// First use.
	carol := gatesdk.NewSDKClient(baseURL)
	require.NoError(t, carol.ActivateInvite(t.Context(), invite.Code))
	sess, err := carol.SignUpEmail(t.Context(), "carol@example.com", "Carol", "Password1!")
	require.NoError(t, err)
	require.Equal(t, "member", sess.Role)

	// Uninvited signup still works, just without the upgrade.
	dave := gatesdk.NewSDKClient(baseURL)
	sess, err = dave.SignUpEmail(t.Context(), "dave@example.com", "Dave", "Password1!")
	require.NoError(t, err)
	require.Equal(t, "guest", sess.Role)

	// Second use.
	erin := gatesdk.NewSDKClient(baseURL)
	require.NoError(t, erin.ActivateInvite(t.Context(), invite.Code))
	sess, err = erin.SignUpEmail(t.Context(), "erin@example.com", "Erin", "Password1!")
	require.NoError(t, err)
	require.Equal(t, "member", sess.Role)

	// Exhausted: the third activation is refused with the distinct code.
	frank := gatesdk.NewSDKClient(baseURL)
	err = frank.ActivateInvite(t.Context(), invite.Code)
	var apiErr *gatesdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, gatesdk.ErrorCodeNoUsesLeft, apiErr.Code)
}

// TestGuestCannotMintInvites verifies the default eligibility rule end to end.
func TestGuestCannotMintInvites(t *testing.T) {
	baseURL, cleanup := setupGateContainer(t, "counted", false)
	defer cleanup()

	bootstrapAdmin(t, baseURL)

	guest := gatesdk.NewSDKClient(baseURL)
	_, err := guest.SignUpEmail(t.Context(), "guest@example.com", "Guest", "Password1!")
	require.NoError(t, err)

	_, err = guest.CreateInvite(t.Context(), 0)
	var apiErr *gatesdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, gatesdk.ErrorCodeInsufficientPermissions, apiErr.Code)
}

// TestSignInAfterSignup verifies email credentials survive the roundtrip.
func TestSignInAfterSignup(t *testing.T) {
	baseURL, cleanup := setupGateContainer(t, "counted", false)
	defer cleanup()

	bootstrapAdmin(t, baseURL)

	client := gatesdk.NewSDKClient(baseURL)
	_, err := client.SignUpEmail(t.Context(), "user@example.com", "User", "Password1!")
	require.NoError(t, err)

	fresh := gatesdk.NewSDKClient(baseURL)
	sess, err := fresh.SignInEmail(t.Context(), "user@example.com", "Password1!")
	require.NoError(t, err)
	require.NotEmpty(t, sess.Token)

	_, err = fresh.SignInEmail(t.Context(), "user@example.com", "WrongPassword")
	var apiErr *gatesdk.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, 401, apiErr.StatusCode)
}
