package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/harborchat/gatehouse/internal/gate/domain"
	"github.com/harborchat/gatehouse/internal/gate/store"
	"github.com/harborchat/gatehouse/pkg/slogx"
)

// codeRetries bounds re-generation when a fresh code collides with an
// existing row. With a 36^6 space this effectively never loops.
const codeRetries = 3

// InviteService owns invite minting and validity evaluation.
type InviteService struct {
	Store store.Store

	Mode              domain.ConsumptionMode
	Duration          time.Duration // required; validated at wiring time
	MaxUses           int           // counted mode default per invite; 1 in single mode
	RoleWithoutInvite string

	// Eligibility, when set, fully replaces the default role check.
	Eligibility EligibilityFunc

	Policy CodePolicy
}

// CreateInvite authorizes the acting user, mints a fresh code and persists
// the invite. maxUses overrides the configured default when positive, and
// is only honored in counted mode.
func (s *InviteService) CreateInvite(
	ctx context.Context,
	creatorID string,
	maxUses int,
) (domain.Invite, error) {
	log := slogx.FromContext(ctx)

	// 1. The acting principal must be authenticated and must exist. Both are
	// checked before eligibility so the error kinds stay distinct.
	if creatorID == "" {
		return domain.Invite{}, ErrNotLoggedIn
	}

	creator, err := s.Store.Users().GetUserByID(ctx, creatorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invite{}, ErrUserNotFound
		}
		log.Error("failed to fetch invite creator", slog.Any("error", err))
		return domain.Invite{}, err
	}

	// 2. Eligibility check.
	eligible := s.Eligibility
	if eligible == nil {
		eligible = defaultEligibility(s.RoleWithoutInvite)
	}
	if !eligible(creator) {
		log.Warn("user not eligible to create invites",
			slog.String("user_id", creator.ID),
			slog.String("role", creator.Role),
		)
		return domain.Invite{}, ErrInsufficientPermissions
	}

	uses := 1
	if s.Mode == domain.ConsumptionCounted {
		uses = s.MaxUses
		if maxUses > 0 {
			uses = maxUses
		}
		if uses < 1 {
			uses = 1
		}
	}

	now := s.Policy.now()
	invite := domain.Invite{
		CreatedBy: creator.ID,
		MaxUses:   uses,
		CreatedAt: now,
		ExpiresAt: ComputeExpiry(now, s.Duration),
	}

	// 3. Generate and persist; regenerate on the (vanishing) chance of a
	// code collision. Codes are never recycled, so collisions are real
	// conflicts, not stale rows.
	for attempt := 0; attempt < codeRetries; attempt++ {
		code, err := s.Policy.generate()
		if err != nil {
			log.Error("failed to generate invite code", slog.Any("error", err))
			return domain.Invite{}, err
		}
		invite.Code = code

		err = s.Store.Invites().CreateInvite(ctx, invite)
		if err == nil {
			log.Debug("invite created",
				slog.String("code", invite.Code),
				slog.String("created_by", creator.ID),
				slog.Int("max_uses", invite.MaxUses),
				slog.Time("expires_at", invite.ExpiresAt),
			)
			return invite, nil
		}
		if !errors.Is(err, store.ErrAlreadyExists) {
			log.Error("failed to persist invite", slog.Any("error", err))
			return domain.Invite{}, err
		}
	}

	return domain.Invite{}, errors.New("invite code space exhausted, giving up")
}

// Uses returns the consumption ledger for a code (counted mode provenance).
func (s *InviteService) Uses(ctx context.Context, code string) ([]domain.InviteUse, error) {
	return s.Store.InviteUses().ListInviteUses(ctx, code)
}
