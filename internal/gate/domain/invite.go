package domain

import "time"

// ConsumptionMode selects how invite usage is tracked.
type ConsumptionMode string

const (
	// ConsumptionSingle marks the invite itself when used (used_by/used_at
	// pair on the record). One invitee per code.
	ConsumptionSingle ConsumptionMode = "single"

	// ConsumptionCounted leaves the invite immutable and appends a ledger
	// row per use; remaining uses are computed from the ledger count.
	ConsumptionCounted ConsumptionMode = "counted"
)

// Invite is a persisted, time-bounded authorization token permitting role
// escalation at signup. Codes are globally unique and never recycled.
type Invite struct {
	Code      string
	CreatedBy string // empty when the creating user has been deleted (SET NULL)
	MaxUses   int    // 1 in single mode; >= 1 in counted mode

	// Single-mode state, encoded inline. Both set or both nil.
	UsedBy *string
	UsedAt *time.Time

	CreatedAt time.Time
	ExpiresAt time.Time // exclusive upper bound: valid at ExpiresAt, invalid after
}

// Used reports whether a single-mode invite has been consumed.
func (i Invite) Used() bool {
	return i.UsedAt != nil
}

// InviteUse is one row of the counted-mode usage ledger. Rows outlive both
// the invite and the user they reference (SET NULL on either deletion), so
// provenance history survives administrative cleanup.
type InviteUse struct {
	ID         string
	InviteCode *string
	UsedBy     *string
	UsedAt     time.Time
}
