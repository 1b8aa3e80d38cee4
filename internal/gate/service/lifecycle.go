package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/harborchat/gatehouse/internal/gate/domain"
	"github.com/harborchat/gatehouse/internal/gate/store"
	"github.com/harborchat/gatehouse/pkg/idx"
	"github.com/harborchat/gatehouse/pkg/slogx"
)

// PathMatcher decides whether a hook applies to a request path.
type PathMatcher func(path string) bool

// PathPrefix matches any path under the given prefix.
func PathPrefix(prefix string) PathMatcher {
	return func(path string) bool { return strings.HasPrefix(path, prefix) }
}

// PathExact matches only the listed paths.
func PathExact(paths ...string) PathMatcher {
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		set[p] = struct{}{}
	}
	return func(path string) bool {
		_, ok := set[path]
		return ok
	}
}

// HookContext carries per-request invite state through the signup pipeline.
type HookContext struct {
	Path string

	// Code is the verified invite code from the request cookie, or "" when
	// no cookie (or a tampered one) was presented.
	Code string

	// User is the account the request resolved to; set before after-hooks run.
	User domain.User

	// ClearCookie discards the invite cookie on the response. Installed by
	// the HTTP layer; only invoked on successful consumption.
	ClearCookie func()
}

// BeforeHook may veto the request (account not yet created).
type BeforeHook func(ctx context.Context, hc *HookContext) error

// AfterHook runs once the account/session exists; it cannot veto.
type AfterHook func(ctx context.Context, hc *HookContext)

type beforeEntry struct {
	match PathMatcher
	fn    BeforeHook
}

type afterEntry struct {
	match PathMatcher
	fn    AfterHook
}

// Hooks is the attachment registry the host's signup/signin endpoints drive.
type Hooks struct {
	before []beforeEntry
	after  []afterEntry
}

func (h *Hooks) Before(match PathMatcher, fn BeforeHook) {
	h.before = append(h.before, beforeEntry{match: match, fn: fn})
}

func (h *Hooks) After(match PathMatcher, fn AfterHook) {
	h.after = append(h.after, afterEntry{match: match, fn: fn})
}

// RunBefore executes matching before-hooks in attachment order. The first
// error wins and blocks account creation.
func (h *Hooks) RunBefore(ctx context.Context, hc *HookContext) error {
	for _, e := range h.before {
		if !e.match(hc.Path) {
			continue
		}
		if err := e.fn(ctx, hc); err != nil {
			return err
		}
	}
	return nil
}

// RunAfter executes matching after-hooks. Hook failures never propagate:
// the account is already committed.
func (h *Hooks) RunAfter(ctx context.Context, hc *HookContext) {
	for _, e := range h.after {
		if e.match(hc.Path) {
			e.fn(ctx, hc)
		}
	}
}

// LifecycleService wires validation, consumption and role transition into
// the signup pipeline. Per request the flow is a small state machine:
// NoCode -> Validating -> Accepted | Rejected(reason) | Ignored.
type LifecycleService struct {
	Store   store.Store
	Invites *InviteService

	Mode                 domain.ConsumptionMode
	RoleWithInvite       string
	SignupRequiresInvite bool // single mode hard gate
}

// AttachHooks registers this orchestrator's hooks. Single mode guards
// signup itself (before-hook can veto) and consumes right after; counted
// mode only observes completed signups/signins.
func (s *LifecycleService) AttachHooks(h *Hooks) {
	switch s.Mode {
	case domain.ConsumptionCounted:
		h.After(PathExact("/v1/sign-up/email", "/v1/sign-in/otp"), s.afterAuth)
	default:
		h.Before(PathPrefix("/v1/sign-up"), s.beforeSignup)
		h.After(PathPrefix("/v1/sign-up"), s.afterAuth)
	}
}

// beforeSignup runs pre-creation and may reject the whole signup. With the
// hard gate enabled a missing cookie is Rejected("invite required");
// otherwise NoCode degrades to Ignored and signup proceeds at the default
// role.
func (s *LifecycleService) beforeSignup(ctx context.Context, hc *HookContext) error {
	if hc.Code == "" {
		if s.SignupRequiresInvite {
			return ErrSignupRequiresInvite
		}
		return nil
	}

	_, outcome, err := s.Invites.Validate(ctx, hc.Code, s.Invites.Policy.now())
	if err != nil {
		return err
	}
	if outcome != OutcomeValid {
		// Pre-creation failure is a hard failure: no account is created.
		return outcome.Err()
	}
	return nil
}

// afterAuth runs once the account/session exists. Invalid codes are
// absorbed here, not surfaced: the signup cannot be rolled back, so the
// request degrades to "signed up without upgrade" and the cookie is left in
// place.
func (s *LifecycleService) afterAuth(ctx context.Context, hc *HookContext) {
	log := slogx.FromContext(ctx)

	if hc.Code == "" {
		return
	}

	inv, outcome, err := s.Invites.Validate(ctx, hc.Code, s.Invites.Policy.now())
	if err != nil {
		log.Error("invite re-validation failed after signup", slog.Any("error", err))
		return
	}
	if outcome != OutcomeValid {
		// An exhausted code may be exhausted by this very user on a retried
		// request. That replay already succeeded, so finish its cleanup.
		if outcome == OutcomeExhausted {
			replayed, err := s.alreadyConsumedBy(ctx, inv, hc.User.ID)
			if err != nil {
				log.Error("replay check failed", slog.Any("error", err))
				return
			}
			if replayed {
				if hc.ClearCookie != nil {
					hc.ClearCookie()
				}
				return
			}
		}
		log.Info("invite invalid at consumption time, signup kept at default role",
			slog.String("code", hc.Code),
			slog.String("outcome", outcome.String()),
			slog.String("user_id", hc.User.ID),
		)
		return
	}

	consumed, err := s.consume(ctx, inv, hc.User)
	if err != nil {
		if errors.Is(err, ErrInviteExhausted) {
			// Lost a race: the last use went to a concurrent consumer between
			// validation and the transactional recheck. Degrade like any
			// other late invalidity and leave the cookie alone.
			log.Info("invite exhausted during consumption, signup kept at default role",
				slog.String("code", inv.Code),
				slog.String("user_id", hc.User.ID),
			)
			return
		}
		log.Error("invite consumption failed", slog.Any("error", err))
		return
	}
	if !consumed {
		// Replayed hook for a session that already consumed its invite;
		// nothing to do and nothing to double-count.
		if hc.ClearCookie != nil {
			hc.ClearCookie()
		}
		return
	}

	// Role transition. Deliberately outside the consumption write: the
	// store contract only promises per-operation atomicity, so a failure
	// here is the documented consistency gap and gets its own log line.
	if err := s.Store.Users().UpdateRole(ctx, hc.User.ID, s.RoleWithInvite); err != nil {
		log.Error("CONSISTENCY GAP: invite consumed but role upgrade failed",
			slog.String("code", inv.Code),
			slog.String("user_id", hc.User.ID),
			slog.String("role", s.RoleWithInvite),
			slog.Any("error", err),
		)
		return
	}
	hc.User.Role = s.RoleWithInvite

	if hc.ClearCookie != nil {
		hc.ClearCookie()
	}

	log.Info("invite consumed",
		slog.String("code", inv.Code),
		slog.String("user_id", hc.User.ID),
		slog.String("invited_by", inv.CreatedBy),
		slog.String("role", s.RoleWithInvite),
	)
}

// alreadyConsumedBy reports whether this user is the reason the code is
// exhausted.
func (s *LifecycleService) alreadyConsumedBy(
	ctx context.Context,
	inv domain.Invite,
	userID string,
) (bool, error) {
	if s.Mode == domain.ConsumptionCounted {
		return s.Store.InviteUses().UserHasUsed(ctx, inv.Code, userID)
	}
	return inv.UsedBy != nil && *inv.UsedBy == userID, nil
}

// consume records the use. Returns false without error when this user
// already consumed the invite (idempotent replay); a concurrent consumer
// draining the last use between validation and the transactional recheck
// surfaces as ErrInviteExhausted instead.
func (s *LifecycleService) consume(
	ctx context.Context,
	inv domain.Invite,
	user domain.User,
) (bool, error) {
	now := s.Invites.Policy.now()

	if s.Mode == domain.ConsumptionCounted {
		consumed := false
		err := s.Store.WithTx(ctx, func(tx store.Tx) error {
			// Replay guard first: a retried hook must not append twice.
			used, err := tx.InviteUses().UserHasUsed(ctx, inv.Code, user.ID)
			if err != nil {
				return err
			}
			if used {
				return nil
			}

			// Re-count inside the transaction. The activate call happened in
			// an earlier request; the gap between it and this signup is
			// tolerated by re-validating here, where the count is
			// authoritative.
			count, err := tx.InviteUses().CountInviteUses(ctx, inv.Code)
			if err != nil {
				return err
			}
			if count >= inv.MaxUses {
				return ErrInviteExhausted
			}

			code := inv.Code
			if err := tx.InviteUses().CreateInviteUse(ctx, domain.InviteUse{
				ID:         idx.New().String(),
				InviteCode: &code,
				UsedBy:     &user.ID,
				UsedAt:     now,
			}); err != nil {
				return err
			}
			consumed = true
			return nil
		})
		if err != nil {
			return false, err
		}
		return consumed, nil
	}

	// Single mode: the used_at IS NULL guard makes the write idempotent and
	// race-safe in one statement.
	ok, err := s.Store.Invites().MarkInviteUsed(ctx, inv.Code, user.ID, now)
	if err != nil {
		return false, err
	}
	return ok, nil
}
