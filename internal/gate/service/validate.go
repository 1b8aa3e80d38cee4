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

// Outcome classifies a validity evaluation. Only OutcomeValid permits
// redemption. Externally NotFound and Expired collapse into one error class
// so callers cannot enumerate which codes ever existed; the distinction is
// kept here for logging.
type Outcome int

const (
	OutcomeValid Outcome = iota
	OutcomeNotFound
	OutcomeExpired
	OutcomeExhausted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeValid:
		return "valid"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeExpired:
		return "expired"
	case OutcomeExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Err maps a non-valid outcome to its service error.
func (o Outcome) Err() error {
	switch o {
	case OutcomeNotFound:
		return ErrInviteNotFound
	case OutcomeExpired:
		return ErrInviteExpired
	case OutcomeExhausted:
		return ErrInviteExhausted
	default:
		return nil
	}
}

// Validate evaluates whether code is redeemable at instant now.
//
// Counted mode checks uses-remaining before expiry so an exhausted-and-also-
// expired code keeps reporting "no uses left"; monitoring depends on that
// error staying stable. Expiry is an exclusive bound: a code is still valid
// at exactly now == expiresAt.
func (s *InviteService) Validate(
	ctx context.Context,
	code string,
	now time.Time,
) (domain.Invite, Outcome, error) {
	log := slogx.FromContext(ctx)

	inv, err := s.Store.Invites().GetInviteByCode(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("invite validation failed", slog.String("outcome", OutcomeNotFound.String()))
			return domain.Invite{}, OutcomeNotFound, nil
		}
		return domain.Invite{}, OutcomeNotFound, err
	}

	switch s.Mode {
	case domain.ConsumptionCounted:
		count, err := s.Store.InviteUses().CountInviteUses(ctx, inv.Code)
		if err != nil {
			return domain.Invite{}, OutcomeNotFound, err
		}
		if count >= inv.MaxUses {
			log.Debug("invite validation failed",
				slog.String("code", inv.Code),
				slog.String("outcome", OutcomeExhausted.String()),
				slog.Int("uses", count),
				slog.Int("max_uses", inv.MaxUses),
			)
			return inv, OutcomeExhausted, nil
		}
		if now.After(inv.ExpiresAt) {
			log.Debug("invite validation failed",
				slog.String("code", inv.Code),
				slog.String("outcome", OutcomeExpired.String()),
			)
			return inv, OutcomeExpired, nil
		}

	default: // single use
		if inv.Used() {
			log.Debug("invite validation failed",
				slog.String("code", inv.Code),
				slog.String("outcome", OutcomeExhausted.String()),
			)
			return inv, OutcomeExhausted, nil
		}
		if now.After(inv.ExpiresAt) {
			log.Debug("invite validation failed",
				slog.String("code", inv.Code),
				slog.String("outcome", OutcomeExpired.String()),
			)
			return inv, OutcomeExpired, nil
		}
	}

	return inv, OutcomeValid, nil
}
