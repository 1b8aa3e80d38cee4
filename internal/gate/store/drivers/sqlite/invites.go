package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/harborchat/gatehouse/internal/gate/domain"
)

type invitesRepo struct {
	q querier
}

func (r *invitesRepo) CreateInvite(ctx context.Context, inv domain.Invite) error {
	query := `
		INSERT INTO invites (code, created_by, max_uses, used_by, used_at, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	var createdBy sql.NullString
	if inv.CreatedBy != "" {
		createdBy = sql.NullString{String: inv.CreatedBy, Valid: true}
	}
	var usedAt sql.NullTime
	if inv.UsedAt != nil {
		usedAt = sql.NullTime{Time: inv.UsedAt.UTC(), Valid: true}
	}
	_, err := r.q.ExecContext(ctx, query,
		inv.Code, createdBy, inv.MaxUses, mapStringNull(inv.UsedBy), usedAt,
		inv.CreatedAt.UTC(), inv.ExpiresAt.UTC())
	return mapConstraint(err)
}

func (r *invitesRepo) GetInviteByCode(ctx context.Context, code string) (domain.Invite, error) {
	query := `
		SELECT code, created_by, max_uses, used_by, used_at, created_at, expires_at
		FROM invites WHERE code = ?
	`
	row := r.q.QueryRowContext(ctx, query, code)

	var inv domain.Invite
	var createdBy, usedBy sql.NullString
	var usedAt sql.NullTime
	err := row.Scan(&inv.Code, &createdBy, &inv.MaxUses, &usedBy, &usedAt,
		&inv.CreatedAt, &inv.ExpiresAt)
	if err != nil {
		return domain.Invite{}, mapNotFound(err)
	}
	if createdBy.Valid {
		inv.CreatedBy = createdBy.String
	}
	inv.UsedBy = mapNullString(usedBy)
	if usedAt.Valid {
		t := usedAt.Time
		inv.UsedAt = &t
	}
	return inv, nil
}

// MarkInviteUsed only touches unused rows; a second call for the same code
// affects zero rows and reports false.
func (r *invitesRepo) MarkInviteUsed(
	ctx context.Context,
	code string,
	usedBy string,
	usedAt time.Time,
) (bool, error) {
	query := `
		UPDATE invites SET used_by = ?, used_at = ?
		WHERE code = ? AND used_at IS NULL
	`
	res, err := r.q.ExecContext(ctx, query, usedBy, usedAt.UTC(), code)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteExpiredInvites only removes rows that were never consumed. A used
// single-mode invite is the provenance record of who invited whom, and any
// code with ledger rows is history; both stay until an administrator
// deletes them, which also keeps their codes reserved forever.
func (r *invitesRepo) DeleteExpiredInvites(ctx context.Context, now time.Time) (int64, error) {
	query := `
		DELETE FROM invites
		WHERE expires_at < ?
		  AND used_at IS NULL
		  AND NOT EXISTS (
			SELECT 1 FROM invite_uses WHERE invite_uses.invite_code = invites.code
		  )
	`
	res, err := r.q.ExecContext(ctx, query, now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
