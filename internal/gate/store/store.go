package store

import (
	"context"
	"errors"
	"time"

	"github.com/harborchat/gatehouse/internal/gate/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement this.
// The contract is deliberately a key-field store: create/find/update/count by
// equality, plus per-operation atomicity via WithTx. Nothing here assumes a
// particular engine.
type Store interface {
	Users() Users
	Invites() Invites
	InviteUses() InviteUses

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error, the
	// transaction is rolled back; otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new user (id is provided by app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during signup/signin.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// UpdateRole overwrites the user's role field and bumps updated_at.
	// This is the only user mutation the invite core performs.
	UpdateRole(ctx context.Context, userID string, role string) error

	// UpdateOTPSecret sets the TOTP secret for a user.
	UpdateOTPSecret(ctx context.Context, userID string, secret string) error

	// DeleteUser removes a user. Invites they created and ledger rows naming
	// them keep their history with the reference nulled (SET NULL).
	DeleteUser(ctx context.Context, userID string) error

	// IsEmpty returns true if there are no users (bootstrap gate).
	IsEmpty(ctx context.Context) (bool, error)
}

type Invites interface {
	// CreateInvite writes a new invite. Codes are primary keys; a collision
	// returns ErrAlreadyExists.
	CreateInvite(ctx context.Context, inv domain.Invite) error

	// GetInviteByCode returns the invite with the exact code, used or not.
	GetInviteByCode(ctx context.Context, code string) (domain.Invite, error)

	// MarkInviteUsed sets used_by/used_at on an unused invite. Returns false
	// without error when the invite was already used: the WHERE used_at IS
	// NULL guard is what makes single-mode consumption idempotent.
	MarkInviteUsed(ctx context.Context, code string, usedBy string, usedAt time.Time) (bool, error)

	// DeleteExpiredInvites is housekeeping; it removes expired invites that
	// were never consumed and returns the number of rows removed. Consumed
	// invites are provenance records and are never deleted here, only by an
	// external administrative action.
	DeleteExpiredInvites(ctx context.Context, now time.Time) (int64, error)
}

type InviteUses interface {
	// CreateInviteUse appends one consumption record to the ledger.
	CreateInviteUse(ctx context.Context, use domain.InviteUse) error

	// CountInviteUses returns the authoritative times-used value for a code.
	// Always a COUNT over the ledger, never a denormalized counter.
	CountInviteUses(ctx context.Context, code string) (int, error)

	// UserHasUsed reports whether this user already has a ledger row for the
	// code (replay guard for the post-signup hook).
	UserHasUsed(ctx context.Context, code string, userID string) (bool, error)

	// ListInviteUses returns all ledger rows for a code, newest first.
	ListInviteUses(ctx context.Context, code string) ([]domain.InviteUse, error)
}
