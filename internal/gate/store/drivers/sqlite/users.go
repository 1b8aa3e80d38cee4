package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/harborchat/gatehouse/internal/gate/domain"
	"github.com/harborchat/gatehouse/internal/gate/store"
)

type usersRepo struct {
	q querier
}

const userColumns = `id, email, name, password_hash, role, otp_secret, created_at, updated_at`

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	query := `
		INSERT INTO users (id, email, name, password_hash, role, otp_secret, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx, query,
		u.ID, u.Email, u.Name, u.PasswordHash, u.Role, mapStringNull(u.OTPSecret), now, now)
	return mapConstraint(err)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return scanUser(r.q.QueryRowContext(ctx, query, id))
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return scanUser(r.q.QueryRowContext(ctx, query, email))
}

func (r *usersRepo) UpdateRole(ctx context.Context, userID string, role string) error {
	query := `UPDATE users SET role = ?, updated_at = ? WHERE id = ?`
	res, err := r.q.ExecContext(ctx, query, role, time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) UpdateOTPSecret(ctx context.Context, userID string, secret string) error {
	query := `UPDATE users SET otp_secret = ?, updated_at = ? WHERE id = ?`
	res, err := r.q.ExecContext(ctx, query, secret, time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	return err
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

func scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	var otpSecret sql.NullString
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role,
		&otpSecret, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.OTPSecret = mapNullString(otpSecret)
	return u, nil
}
