package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/harborchat/gatehouse/internal/gate/domain"
	"github.com/harborchat/gatehouse/pkg/idx"
)

func TestValidateSingleUse(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	member := seedUser(t, s, "member@example.com", roleMember)

	created := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	expires := created.Add(time.Hour) // 11:00:00

	require.NoError(t, s.Invites().CreateInvite(ctx, domain.Invite{
		Code:      "SINGLE",
		CreatedBy: member.ID,
		MaxUses:   1,
		CreatedAt: created,
		ExpiresAt: expires,
	}))

	svc := &InviteService{Store: s, Mode: domain.ConsumptionSingle}

	t.Run("unknown code", func(t *testing.T) {
		_, outcome, err := svc.Validate(ctx, "NOPE", created)
		require.NoError(t, err)
		require.Equal(t, OutcomeNotFound, outcome)
		require.ErrorIs(t, outcome.Err(), ErrInviteNotFound)
	})

	t.Run("fresh code is valid", func(t *testing.T) {
		inv, outcome, err := svc.Validate(ctx, "SINGLE", created.Add(time.Minute))
		require.NoError(t, err)
		require.Equal(t, OutcomeValid, outcome)
		require.Equal(t, "SINGLE", inv.Code)
	})

	t.Run("valid up to and including the expiry instant", func(t *testing.T) {
		for _, now := range []time.Time{
			expires.Add(-time.Millisecond),
			expires,
		} {
			_, outcome, err := svc.Validate(ctx, "SINGLE", now)
			require.NoError(t, err)
			require.Equal(t, OutcomeValid, outcome, "at %s", now)
		}
	})

	t.Run("invalid any instant past expiry", func(t *testing.T) {
		_, outcome, err := svc.Validate(ctx, "SINGLE", expires.Add(time.Millisecond))
		require.NoError(t, err)
		require.Equal(t, OutcomeExpired, outcome)
	})

	t.Run("used code is exhausted even before expiry", func(t *testing.T) {
		ok, err := s.Invites().MarkInviteUsed(ctx, "SINGLE", member.ID, created.Add(time.Minute))
		require.NoError(t, err)
		require.True(t, ok)

		_, outcome, err := svc.Validate(ctx, "SINGLE", created.Add(2*time.Minute))
		require.NoError(t, err)
		require.Equal(t, OutcomeExhausted, outcome)
	})
}

func TestValidateCounted(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	member := seedUser(t, s, "member@example.com", roleMember)

	created := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	expires := created.Add(time.Hour)

	require.NoError(t, s.Invites().CreateInvite(ctx, domain.Invite{
		Code:      "COUNTED",
		CreatedBy: member.ID,
		MaxUses:   2,
		CreatedAt: created,
		ExpiresAt: expires,
	}))

	svc := &InviteService{Store: s, Mode: domain.ConsumptionCounted}

	use := func(t *testing.T, email string) {
		t.Helper()
		u := seedUser(t, s, email, roleGuest)
		code := "COUNTED"
		require.NoError(t, s.InviteUses().CreateInviteUse(ctx, domain.InviteUse{
			ID:         idx.New().String(),
			InviteCode: &code,
			UsedBy:     &u.ID,
			UsedAt:     created.Add(time.Minute),
		}))
	}

	t.Run("valid while uses remain", func(t *testing.T) {
		use(t, "first@example.com")
		_, outcome, err := svc.Validate(ctx, "COUNTED", created.Add(2*time.Minute))
		require.NoError(t, err)
		require.Equal(t, OutcomeValid, outcome)
	})

	t.Run("count at cap means exhausted", func(t *testing.T) {
		use(t, "second@example.com")
		_, outcome, err := svc.Validate(ctx, "COUNTED", created.Add(3*time.Minute))
		require.NoError(t, err)
		require.Equal(t, OutcomeExhausted, outcome)
		require.ErrorIs(t, outcome.Err(), ErrInviteExhausted)
	})

	t.Run("exhausted wins over expired", func(t *testing.T) {
		// Both conditions hold past expiry; callers watching for the
		// no-uses-left error must keep seeing it.
		_, outcome, err := svc.Validate(ctx, "COUNTED", expires.Add(time.Hour))
		require.NoError(t, err)
		require.Equal(t, OutcomeExhausted, outcome)
	})
}
