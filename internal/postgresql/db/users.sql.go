package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const userColumns = `id, name, email, password_hash, role, reset_token, reset_token_expiry, created_at, updated_at`

const createUser = `
INSERT INTO users (name, email, password_hash, role)
VALUES ($1, $2, $3, $4)
RETURNING ` + userColumns

type CreateUserParams struct {
	Name         string
	Email        string
	PasswordHash string
	Role         pgtype.Text
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (Users, error) {
	row := q.db.QueryRow(ctx, createUser, arg.Name, arg.Email, arg.PasswordHash, arg.Role)

	return scanUser(row)
}

const userByEmail = `
SELECT ` + userColumns + `
FROM users
WHERE email = $1`

func (q *Queries) UserByEmail(ctx context.Context, email string) (Users, error) {
	return scanUser(q.db.QueryRow(ctx, userByEmail, email))
}

const userByID = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1`

func (q *Queries) UserByID(ctx context.Context, id pgtype.UUID) (Users, error) {
	return scanUser(q.db.QueryRow(ctx, userByID, id))
}

const userByResetToken = `
SELECT ` + userColumns + `
FROM users
WHERE reset_token = $1`

func (q *Queries) UserByResetToken(ctx context.Context, resetToken string) (Users, error) {
	return scanUser(q.db.QueryRow(ctx, userByResetToken, resetToken))
}

const updateUserRole = `
UPDATE users
SET role = $2, updated_at = now()
WHERE id = $1
RETURNING ` + userColumns

type UpdateUserRoleParams struct {
	ID   pgtype.UUID
	Role pgtype.Text
}

func (q *Queries) UpdateUserRole(ctx context.Context, arg UpdateUserRoleParams) (Users, error) {
	return scanUser(q.db.QueryRow(ctx, updateUserRole, arg.ID, arg.Role))
}

const setResetToken = `
UPDATE users
SET reset_token = $2, reset_token_expiry = $3, updated_at = now()
WHERE id = $1`

type SetResetTokenParams struct {
	ID               pgtype.UUID
	ResetToken       pgtype.Text
	ResetTokenExpiry pgtype.Timestamptz
}

func (q *Queries) SetResetToken(ctx context.Context, arg SetResetTokenParams) (int64, error) {
	tag, err := q.db.Exec(ctx, setResetToken, arg.ID, arg.ResetToken, arg.ResetTokenExpiry)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

// resetPassword clears the reset token pair in the same statement that
// writes the new hash, a consumed token cannot be replayed.
const resetPassword = `
UPDATE users
SET password_hash = $2, reset_token = NULL, reset_token_expiry = NULL, updated_at = now()
WHERE id = $1`

type ResetPasswordParams struct {
	ID           pgtype.UUID
	PasswordHash string
}

func (q *Queries) ResetPassword(ctx context.Context, arg ResetPasswordParams) (int64, error) {
	tag, err := q.db.Exec(ctx, resetPassword, arg.ID, arg.PasswordHash)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

const listUsers = `
SELECT ` + userColumns + `
FROM users
ORDER BY created_at`

func (q *Queries) ListUsers(ctx context.Context) ([]Users, error) {
	rows, err := q.db.Query(ctx, listUsers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Users

	for rows.Next() {
		var u Users
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.ResetToken, &u.ResetTokenExpiry, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}

		res = append(res, u)
	}

	return res, rows.Err()
}

func scanUser(row scanner) (Users, error) {
	var u Users

	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.ResetToken, &u.ResetTokenExpiry, &u.CreatedAt, &u.UpdatedAt)

	return u, err
}
