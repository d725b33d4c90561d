package postgresql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sanLimbu/taskboard-api/internal"
	"github.com/sanLimbu/taskboard-api/internal/postgresql/db"
)

// User represents the repository used for interacting with account records.
type User struct {
	q *db.Queries
}

// NewUser instantiates the User repository.
func NewUser(pool *pgxpool.Pool) *User {
	return &User{
		q: db.New(pool),
	}
}

// Create inserts a new account, the email must not be in use yet.
func (u *User) Create(ctx context.Context, params internal.CreateUserParams) (internal.User, error) {
	defer newOTELSpan(ctx, "User.Create").End()

	rec, err := u.q.CreateUser(ctx, db.CreateUserParams{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		Role:         newRole(params.Role),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return internal.User{}, internal.WrapErrorf(err, internal.ErrorCodeDuplicateEmail, "email already used")
		}

		return internal.User{}, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "q.CreateUser")
	}

	return convertUser(rec), nil
}

// ByEmail returns the account registered under the received email.
func (u *User) ByEmail(ctx context.Context, email string) (internal.User, error) {
	defer newOTELSpan(ctx, "User.ByEmail").End()

	rec, err := u.q.UserByEmail(ctx, email)
	if err != nil {
		if isNoRows(err) {
			return internal.User{}, internal.WrapErrorf(err, internal.ErrorCodeNotFound, "user not found")
		}

		return internal.User{}, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "q.UserByEmail")
	}

	return convertUser(rec), nil
}

// ByID returns the account with the received id.
func (u *User) ByID(ctx context.Context, id string) (internal.User, error) {
	defer newOTELSpan(ctx, "User.ByID").End()

	uid, err := newUUID(id)
	if err != nil {
		return internal.User{}, err
	}

	rec, err := u.q.UserByID(ctx, uid)
	if err != nil {
		if isNoRows(err) {
			return internal.User{}, internal.WrapErrorf(err, internal.ErrorCodeNotFound, "user not found")
		}

		return internal.User{}, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "q.UserByID")
	}

	return convertUser(rec), nil
}

// ByResetToken returns the account whose stored reset token equals the
// received value. Expiry is checked by the caller.
func (u *User) ByResetToken(ctx context.Context, resetToken string) (internal.User, error) {
	defer newOTELSpan(ctx, "User.ByResetToken").End()

	rec, err := u.q.UserByResetToken(ctx, resetToken)
	if err != nil {
		if isNoRows(err) {
			return internal.User{}, internal.WrapErrorf(err, internal.ErrorCodeNotFound, "user not found")
		}

		return internal.User{}, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "q.UserByResetToken")
	}

	return convertUser(rec), nil
}

// SetRole updates the role of an existing account.
func (u *User) SetRole(ctx context.Context, id string, role internal.Role) (internal.User, error) {
	defer newOTELSpan(ctx, "User.SetRole").End()

	uid, err := newUUID(id)
	if err != nil {
		return internal.User{}, err
	}

	rec, err := u.q.UpdateUserRole(ctx, db.UpdateUserRoleParams{
		ID:   uid,
		Role: newRole(role),
	})
	if err != nil {
		if isNoRows(err) {
			return internal.User{}, internal.WrapErrorf(err, internal.ErrorCodeNotFound, "user not found")
		}

		return internal.User{}, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "q.UpdateUserRole")
	}

	return convertUser(rec), nil
}

// SetResetToken stores a new reset token pair, superseding any outstanding
// one for this account.
func (u *User) SetResetToken(ctx context.Context, id, resetToken string, expiry time.Time) error {
	defer newOTELSpan(ctx, "User.SetResetToken").End()

	uid, err := newUUID(id)
	if err != nil {
		return err
	}

	affected, err := u.q.SetResetToken(ctx, db.SetResetTokenParams{
		ID:               uid,
		ResetToken:       newText(&resetToken),
		ResetTokenExpiry: newTimestamptz(expiry),
	})
	if err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "q.SetResetToken")
	}

	if affected == 0 {
		return internal.NewErrorf(internal.ErrorCodeNotFound, "user not found")
	}

	return nil
}

// ResetPassword writes the new password hash and clears the reset token
// pair in the same statement.
func (u *User) ResetPassword(ctx context.Context, id, passwordHash string) error {
	defer newOTELSpan(ctx, "User.ResetPassword").End()

	uid, err := newUUID(id)
	if err != nil {
		return err
	}

	affected, err := u.q.ResetPassword(ctx, db.ResetPasswordParams{
		ID:           uid,
		PasswordHash: passwordHash,
	})
	if err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "q.ResetPassword")
	}

	if affected == 0 {
		return internal.NewErrorf(internal.ErrorCodeNotFound, "user not found")
	}

	return nil
}

// List returns every account, ordered by creation time.
func (u *User) List(ctx context.Context) ([]internal.User, error) {
	defer newOTELSpan(ctx, "User.List").End()

	recs, err := u.q.ListUsers(ctx)
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "q.ListUsers")
	}

	res := make([]internal.User, 0, len(recs))
	for _, rec := range recs {
		res = append(res, convertUser(rec))
	}

	return res, nil
}

func newRole(r internal.Role) pgtype.Text {
	if r == internal.RoleUnset {
		return pgtype.Text{}
	}

	s := string(r)

	return pgtype.Text{String: s, Valid: true}
}

func convertUser(rec db.Users) internal.User {
	res := internal.User{
		ID:           uuidString(rec.ID),
		Name:         rec.Name,
		Email:        rec.Email,
		PasswordHash: rec.PasswordHash,
		Role:         internal.Role(rec.Role.String),
		CreatedAt:    rec.CreatedAt.Time,
		UpdatedAt:    rec.UpdatedAt.Time,
	}

	if rec.ResetToken.Valid {
		tok := rec.ResetToken.String
		res.ResetToken = &tok
	}

	if rec.ResetTokenExpiry.Valid {
		exp := rec.ResetTokenExpiry.Time
		res.ResetTokenExpiry = &exp
	}

	return res
}
