package internal

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Role indicates what a user may do. An account has no role until the
// role-selection step completes.
type Role string

const (
	RoleUnset Role = ""
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole converts the received value into a Role, only "admin" and "user"
// are accepted.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleUser:
		return RoleUser, nil
	}

	return RoleUnset, NewErrorf(ErrorCodeInvalidRole, "invalid role: %q", s)
}

// User represents an account able to authenticate against the service.
// PasswordHash and the reset token pair never leave the service layer.
type User struct {
	ID               string
	Name             string
	Email            string
	PasswordHash     string
	Role             Role
	ResetToken       *string
	ResetTokenExpiry *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Ref returns the projection of this user safe to embed in responses.
func (u User) Ref() UserRef {
	return UserRef{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

// UserRef identifies a user in task assignments and creator fields.
type UserRef struct {
	ID    string
	Name  string
	Email string
}

// CreateUserParams defines the values required to create a new account.
type CreateUserParams struct {
	Name         string
	Email        string
	PasswordHash string
	Role         Role
}

// Validate indicates whether the fields are valid for creating an account.
// Role is optional at registration and finalized later via role selection.
func (p CreateUserParams) Validate() error {
	if err := validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.PasswordHash, validation.Required),
		validation.Field(&p.Role, validation.In(RoleUnset, RoleAdmin, RoleUser)),
	); err != nil {
		return WrapErrorf(err, ErrorCodeInvalidArgument, "validation.ValidateStruct")
	}

	return nil
}
