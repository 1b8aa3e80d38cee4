package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/harborchat/gatehouse/internal/gate/domain"
	"github.com/harborchat/gatehouse/internal/gate/store"
	"github.com/harborchat/gatehouse/internal/gate/store/drivers/sqlite"
	"github.com/harborchat/gatehouse/pkg/idx"
)

const (
	roleGuest  = "guest"
	roleMember = "member"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

func seedUser(t *testing.T, s store.Store, email, role string) domain.User {
	t.Helper()
	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		Name:         "Test User",
		PasswordHash: "hash",
		Role:         role,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

// fixedCode returns a generator that always yields the same code.
func fixedCode(code string) func() (string, error) {
	return func() (string, error) { return code, nil }
}

// stepClock replays a fixed sequence of instants, holding the last one once
// the sequence runs out.
func stepClock(times ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		t := times[i]
		if i < len(times)-1 {
			i++
		}
		return t
	}
}

func TestCreateInvite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	member := seedUser(t, s, "member@example.com", roleMember)
	guest := seedUser(t, s, "guest@example.com", roleGuest)

	tenAM := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	svc := &InviteService{
		Store:             s,
		Mode:              domain.ConsumptionSingle,
		Duration:          time.Hour,
		RoleWithoutInvite: roleGuest,
		Policy: CodePolicy{
			GenerateCode: fixedCode("invite-123"),
			Now:          stepClock(tenAM),
		},
	}

	t.Run("anonymous caller is rejected first", func(t *testing.T) {
		_, err := svc.CreateInvite(ctx, "", 0)
		require.ErrorIs(t, err, ErrNotLoggedIn)
	})

	t.Run("unknown user id", func(t *testing.T) {
		_, err := svc.CreateInvite(ctx, "no-such-user", 0)
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("default-role users may not mint", func(t *testing.T) {
		_, err := svc.CreateInvite(ctx, guest.ID, 0)
		require.ErrorIs(t, err, ErrInsufficientPermissions)
	})

	t.Run("member mints with expiry from the injected clock", func(t *testing.T) {
		inv, err := svc.CreateInvite(ctx, member.ID, 0)
		require.NoError(t, err)
		require.Equal(t, "invite-123", inv.Code)
		require.Equal(t, member.ID, inv.CreatedBy)
		require.Equal(t, 1, inv.MaxUses)
		require.Equal(t, tenAM.Add(time.Hour), inv.ExpiresAt)

		// Round-trips through the store.
		got, err := s.Invites().GetInviteByCode(ctx, "invite-123")
		require.NoError(t, err)
		require.True(t, got.ExpiresAt.Equal(inv.ExpiresAt))
	})

	t.Run("collision retries then gives up on a constant generator", func(t *testing.T) {
		_, err := svc.CreateInvite(ctx, member.ID, 0)
		require.Error(t, err)
		require.NotErrorIs(t, err, store.ErrAlreadyExists)
	})
}

func TestCreateInviteCustomEligibility(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	guest := seedUser(t, s, "guest@example.com", roleGuest)
	admin := seedUser(t, s, "admin@example.com", "admin")

	// The predicate fully replaces the default role check, so a guest can be
	// allowed and an admin denied.
	svc := &InviteService{
		Store:             s,
		Mode:              domain.ConsumptionSingle,
		Duration:          time.Hour,
		RoleWithoutInvite: roleGuest,
		Eligibility:       func(u domain.User) bool { return u.Role == roleGuest },
	}

	_, err := svc.CreateInvite(ctx, guest.ID, 0)
	require.NoError(t, err)

	_, err = svc.CreateInvite(ctx, admin.ID, 0)
	require.ErrorIs(t, err, ErrInsufficientPermissions)
}

func TestCreateInviteCountedUses(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	member := seedUser(t, s, "member@example.com", roleMember)

	svc := &InviteService{
		Store:             s,
		Mode:              domain.ConsumptionCounted,
		Duration:          time.Hour,
		MaxUses:           5,
		RoleWithoutInvite: roleGuest,
	}

	t.Run("configured default applies", func(t *testing.T) {
		inv, err := svc.CreateInvite(ctx, member.ID, 0)
		require.NoError(t, err)
		require.Equal(t, 5, inv.MaxUses)
	})

	t.Run("per-invite override wins", func(t *testing.T) {
		inv, err := svc.CreateInvite(ctx, member.ID, 2)
		require.NoError(t, err)
		require.Equal(t, 2, inv.MaxUses)
	})
}
