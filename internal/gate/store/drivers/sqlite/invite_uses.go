package sqlite

import (
	"context"
	"database/sql"

	"github.com/harborchat/gatehouse/internal/gate/domain"
)

type inviteUsesRepo struct {
	q querier
}

func (r *inviteUsesRepo) CreateInviteUse(ctx context.Context, use domain.InviteUse) error {
	query := `
		INSERT INTO invite_uses (id, invite_code, used_by, used_at)
		VALUES (?, ?, ?, ?)
	`
	_, err := r.q.ExecContext(ctx, query,
		use.ID, mapStringNull(use.InviteCode), mapStringNull(use.UsedBy), use.UsedAt.UTC())
	return mapConstraint(err)
}

func (r *inviteUsesRepo) CountInviteUses(ctx context.Context, code string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM invite_uses WHERE invite_code = ?`
	if err := r.q.QueryRowContext(ctx, query, code).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *inviteUsesRepo) UserHasUsed(ctx context.Context, code string, userID string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM invite_uses WHERE invite_code = ? AND used_by = ?`
	if err := r.q.QueryRowContext(ctx, query, code, userID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *inviteUsesRepo) ListInviteUses(ctx context.Context, code string) ([]domain.InviteUse, error) {
	query := `
		SELECT id, invite_code, used_by, used_at
		FROM invite_uses WHERE invite_code = ?
		ORDER BY used_at DESC
	`
	rows, err := r.q.QueryContext(ctx, query, code)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var uses []domain.InviteUse
	for rows.Next() {
		var use domain.InviteUse
		var inviteCode, usedBy sql.NullString
		if err := rows.Scan(&use.ID, &inviteCode, &usedBy, &use.UsedAt); err != nil {
			return nil, err
		}
		use.InviteCode = mapNullString(inviteCode)
		use.UsedBy = mapNullString(usedBy)
		uses = append(uses, use)
	}
	return uses, rows.Err()
}
