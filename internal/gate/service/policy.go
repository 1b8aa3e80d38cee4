package service

import (
	"time"

	"github.com/harborchat/gatehouse/internal/gate/domain"
	"github.com/harborchat/gatehouse/pkg/cryptox"
)

// CodePolicy bundles the injectable pieces of invite minting: code
// generation and the clock. Both default to production implementations and
// are overridden in tests for determinism.
type CodePolicy struct {
	GenerateCode func() (string, error)
	Now          func() time.Time
}

func (p CodePolicy) generate() (string, error) {
	if p.GenerateCode != nil {
		return p.GenerateCode()
	}
	return cryptox.GenerateInviteCode(cryptox.DefaultCodeLength)
}

func (p CodePolicy) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now().UTC()
}

// Time exposes the policy clock to callers outside the package.
func (p CodePolicy) Time() time.Time { return p.now() }

// ComputeExpiry returns the exclusive redeemability bound for an invite
// minted at now. The duration is caller-supplied configuration; there is no
// system-wide fallback.
func ComputeExpiry(now time.Time, duration time.Duration) time.Time {
	return now.Add(duration)
}

// EligibilityFunc decides whether a user may create invites. When supplied
// it fully replaces the default policy; there is no AND-composition with it.
type EligibilityFunc func(u domain.User) bool

// defaultEligibility: anyone except users still at the un-upgraded signup
// role may mint invites.
func defaultEligibility(roleWithoutInvite string) EligibilityFunc {
	return func(u domain.User) bool {
		return u.Role != roleWithoutInvite
	}
}
