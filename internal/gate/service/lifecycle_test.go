package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/harborchat/gatehouse/internal/gate/domain"
	"github.com/harborchat/gatehouse/internal/gate/store"
)

func newLifecycle(s store.Store, mode domain.ConsumptionMode, now time.Time) *LifecycleService {
	return &LifecycleService{
		Store: s,
		Invites: &InviteService{
			Store:             s,
			Mode:              mode,
			Duration:          time.Hour,
			RoleWithoutInvite: roleGuest,
			Policy:            CodePolicy{Now: func() time.Time { return now }},
		},
		Mode:                 mode,
		RoleWithInvite:       roleMember,
		SignupRequiresInvite: true,
	}
}

func TestBeforeSignupGate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	member := seedUser(t, s, "member@example.com", roleMember)
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, s.Invites().CreateInvite(ctx, domain.Invite{
		Code:      "GATE01",
		CreatedBy: member.ID,
		MaxUses:   1,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}))

	lc := newLifecycle(s, domain.ConsumptionSingle, now)

	t.Run("no cookie is vetoed when the gate is on", func(t *testing.T) {
		err := lc.beforeSignup(ctx, &HookContext{Path: "/v1/sign-up/email"})
		require.ErrorIs(t, err, ErrSignupRequiresInvite)
	})

	t.Run("no cookie passes when the gate is off", func(t *testing.T) {
		open := newLifecycle(s, domain.ConsumptionSingle, now)
		open.SignupRequiresInvite = false
		require.NoError(t, open.beforeSignup(ctx, &HookContext{Path: "/v1/sign-up/email"}))
	})

	t.Run("bad code is vetoed before any account exists", func(t *testing.T) {
		err := lc.beforeSignup(ctx, &HookContext{Path: "/v1/sign-up/email", Code: "NOPE"})
		require.ErrorIs(t, err, ErrInviteNotFound)
	})

	t.Run("valid code passes", func(t *testing.T) {
		err := lc.beforeSignup(ctx, &HookContext{Path: "/v1/sign-up/email", Code: "GATE01"})
		require.NoError(t, err)
	})
}

func TestAfterAuthSingleUse(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	member := seedUser(t, s, "member@example.com", roleMember)
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, s.Invites().CreateInvite(ctx, domain.Invite{
		Code:      "ONCE01",
		CreatedBy: member.ID,
		MaxUses:   1,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}))

	lc := newLifecycle(s, domain.ConsumptionSingle, now.Add(time.Minute))

	first := seedUser(t, s, "first@example.com", roleGuest)
	second := seedUser(t, s, "second@example.com", roleGuest)

	t.Run("first consumer is upgraded and the cookie cleared", func(t *testing.T) {
		cleared := false
		hc := &HookContext{
			Path:        "/v1/sign-up/email",
			Code:        "ONCE01",
			User:        first,
			ClearCookie: func() { cleared = true },
		}
		lc.afterAuth(ctx, hc)

		require.True(t, cleared)
		require.Equal(t, roleMember, hc.User.Role)

		got, err := s.Users().GetUserByID(ctx, first.ID)
		require.NoError(t, err)
		require.Equal(t, roleMember, got.Role)

		inv, err := s.Invites().GetInviteByCode(ctx, "ONCE01")
		require.NoError(t, err)
		require.True(t, inv.Used())
		require.Equal(t, first.ID, *inv.UsedBy)
	})

	t.Run("second consumer is absorbed, account kept at default role", func(t *testing.T) {
		cleared := false
		hc := &HookContext{
			Path:        "/v1/sign-up/email",
			Code:        "ONCE01",
			User:        second,
			ClearCookie: func() { cleared = true },
		}
		lc.afterAuth(ctx, hc)

		// No upgrade, no cookie clear, and the original consumer record is
		// untouched.
		require.False(t, cleared)
		got, err := s.Users().GetUserByID(ctx, second.ID)
		require.NoError(t, err)
		require.Equal(t, roleGuest, got.Role)

		inv, err := s.Invites().GetInviteByCode(ctx, "ONCE01")
		require.NoError(t, err)
		require.Equal(t, first.ID, *inv.UsedBy)
	})

	t.Run("no code is a no-op", func(t *testing.T) {
		lc.afterAuth(ctx, &HookContext{Path: "/v1/sign-up/email", User: second})
		got, err := s.Users().GetUserByID(ctx, second.ID)
		require.NoError(t, err)
		require.Equal(t, roleGuest, got.Role)
	})
}

func TestAfterAuthCounted(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	member := seedUser(t, s, "member@example.com", roleMember)
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, s.Invites().CreateInvite(ctx, domain.Invite{
		Code:      "MULTI1",
		CreatedBy: member.ID,
		MaxUses:   2,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}))

	lc := newLifecycle(s, domain.ConsumptionCounted, now.Add(time.Minute))

	redeem := func(t *testing.T, u domain.User) bool {
		t.Helper()
		cleared := false
		lc.afterAuth(ctx, &HookContext{
			Path:        "/v1/sign-up/email",
			Code:        "MULTI1",
			User:        u,
			ClearCookie: func() { cleared = true },
		})
		return cleared
	}

	first := seedUser(t, s, "first@example.com", roleGuest)
	second := seedUser(t, s, "second@example.com", roleGuest)
	third := seedUser(t, s, "third@example.com", roleGuest)

	t.Run("uses accumulate in the ledger until the cap", func(t *testing.T) {
		require.True(t, redeem(t, first))
		require.True(t, redeem(t, second))

		count, err := s.InviteUses().CountInviteUses(ctx, "MULTI1")
		require.NoError(t, err)
		require.Equal(t, 2, count)

		for _, id := range []string{first.ID, second.ID} {
			u, err := s.Users().GetUserByID(ctx, id)
			require.NoError(t, err)
			require.Equal(t, roleMember, u.Role)
		}
	})

	t.Run("third consumer finds the code exhausted", func(t *testing.T) {
		require.False(t, redeem(t, third))

		u, err := s.Users().GetUserByID(ctx, third.ID)
		require.NoError(t, err)
		require.Equal(t, roleGuest, u.Role)

		count, err := s.InviteUses().CountInviteUses(ctx, "MULTI1")
		require.NoError(t, err)
		require.Equal(t, 2, count)
	})

	t.Run("replay for a past consumer does not double count", func(t *testing.T) {
		require.True(t, redeem(t, first))

		count, err := s.InviteUses().CountInviteUses(ctx, "MULTI1")
		require.NoError(t, err)
		require.Equal(t, 2, count)
	})
}

func TestConsumeRaceLoserVsReplay(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	member := seedUser(t, s, "member@example.com", roleMember)
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, s.Invites().CreateInvite(ctx, domain.Invite{
		Code:      "RACE01",
		CreatedBy: member.ID,
		MaxUses:   1,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}))

	lc := newLifecycle(s, domain.ConsumptionCounted, now.Add(time.Minute))
	winner := seedUser(t, s, "winner@example.com", roleGuest)
	loser := seedUser(t, s, "loser@example.com", roleGuest)

	// Both requests validated the same still-valid snapshot.
	inv, outcome, err := lc.Invites.Validate(ctx, "RACE01", now.Add(time.Minute))
	require.NoError(t, err)
	require.Equal(t, OutcomeValid, outcome)

	consumed, err := lc.consume(ctx, inv, winner)
	require.NoError(t, err)
	require.True(t, consumed)

	// The loser's transactional recheck reports exhaustion, not a replay.
	consumed, err = lc.consume(ctx, inv, loser)
	require.ErrorIs(t, err, ErrInviteExhausted)
	require.False(t, consumed)

	// The winner's retried hook is a replay: no error, nothing counted twice.
	consumed, err = lc.consume(ctx, inv, winner)
	require.NoError(t, err)
	require.False(t, consumed)

	count, err := s.InviteUses().CountInviteUses(ctx, "RACE01")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestAttachHooksRouting(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	t.Run("single mode guards the whole sign-up prefix", func(t *testing.T) {
		var h Hooks
		newLifecycle(s, domain.ConsumptionSingle, now).AttachHooks(&h)

		err := h.RunBefore(ctx, &HookContext{Path: "/v1/sign-up/email"})
		require.ErrorIs(t, err, ErrSignupRequiresInvite)

		// Sign-in paths are not guarded.
		require.NoError(t, h.RunBefore(ctx, &HookContext{Path: "/v1/sign-in/email"}))
	})

	t.Run("counted mode never vetoes", func(t *testing.T) {
		var h Hooks
		newLifecycle(s, domain.ConsumptionCounted, now).AttachHooks(&h)

		require.NoError(t, h.RunBefore(ctx, &HookContext{Path: "/v1/sign-up/email"}))
	})

	t.Run("exact matcher ignores sibling paths", func(t *testing.T) {
		match := PathExact("/v1/sign-up/email", "/v1/sign-in/otp")
		require.True(t, match("/v1/sign-in/otp"))
		require.False(t, match("/v1/sign-in/email"))
		require.False(t, match("/v1/sign-up/email/extra"))
	})
}
