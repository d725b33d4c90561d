package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/sanLimbu/taskboard-api/internal"
	"github.com/sanLimbu/taskboard-api/internal/password"
	"github.com/sanLimbu/taskboard-api/internal/token"
)

// UserRepository defines the datastore handling persisting account records.
type UserRepository interface {
	Create(ctx context.Context, params internal.CreateUserParams) (internal.User, error)
	ByEmail(ctx context.Context, email string) (internal.User, error)
	ByID(ctx context.Context, id string) (internal.User, error)
	ByResetToken(ctx context.Context, resetToken string) (internal.User, error)
	SetRole(ctx context.Context, id string, role internal.Role) (internal.User, error)
	SetResetToken(ctx context.Context, id, resetToken string, expiry time.Time) error
	ResetPassword(ctx context.Context, id, passwordHash string) error
	List(ctx context.Context) ([]internal.User, error)
}

// Auth defines the application service in charge of accounts, credentials
// and both token kinds.
type Auth struct {
	logger   *zap.Logger
	repo     UserRepository
	sessions *token.SessionManager
	hasher   *password.Hasher
}

// NewAuth instantiates the Auth service.
func NewAuth(logger *zap.Logger, repo UserRepository, sessions *token.SessionManager, hasher *password.Hasher) *Auth {
	return &Auth{
		logger:   logger,
		repo:     repo,
		sessions: sessions,
		hasher:   hasher,
	}
}

// Register creates a new account and returns a session token for it. Role
// is optional, it can be finalized later via SetRole.
func (a *Auth) Register(ctx context.Context, name, email, pass string, role internal.Role) (string, internal.User, error) {
	ctx, span := trace.SpanFromContext(ctx).TracerProvider().Tracer(otelName).Start(ctx, "Auth.Register")
	defer span.End()

	hash, err := a.hasher.Hash(pass)
	if err != nil {
		return "", internal.User{}, err
	}

	params := internal.CreateUserParams{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}

	if err := params.Validate(); err != nil {
		return "", internal.User{}, err
	}

	user, err := a.repo.Create(ctx, params)
	if err != nil {
		return "", internal.User{}, err
	}

	session, err := a.sessions.Issue(user.ID)
	if err != nil {
		return "", internal.User{}, err
	}

	a.logger.Info("registered", zap.String("user_id", user.ID))

	return session, user, nil
}

// Login exchanges credentials for a session token. Unknown email and wrong
// password fail identically.
func (a *Auth) Login(ctx context.Context, email, pass string) (string, internal.User, error) {
	ctx, span := trace.SpanFromContext(ctx).TracerProvider().Tracer(otelName).Start(ctx, "Auth.Login")
	defer span.End()

	user, err := a.repo.ByEmail(ctx, email)
	if err != nil {
		return "", internal.User{}, internal.WrapErrorf(err, internal.ErrorCodeInvalidCredentials, "invalid credentials")
	}

	if !a.hasher.Verify(pass, user.PasswordHash) {
		return "", internal.User{}, internal.NewErrorf(internal.ErrorCodeInvalidCredentials, "invalid credentials")
	}

	session, err := a.sessions.Issue(user.ID)
	if err != nil {
		return "", internal.User{}, err
	}

	return session, user, nil
}

// RequestPasswordReset issues a reset token for the account registered
// under the email, superseding any outstanding token. The token is returned
// to the caller directly, there is no email delivery.
func (a *Auth) RequestPasswordReset(ctx context.Context, email string) (string, time.Time, error) {
	ctx, span := trace.SpanFromContext(ctx).TracerProvider().Tracer(otelName).Start(ctx, "Auth.RequestPasswordReset")
	defer span.End()

	user, err := a.repo.ByEmail(ctx, email)
	if err != nil {
		return "", time.Time{}, err
	}

	resetToken, expiry, err := token.NewResetToken()
	if err != nil {
		return "", time.Time{}, err
	}

	if err := a.repo.SetResetToken(ctx, user.ID, resetToken, expiry); err != nil {
		return "", time.Time{}, err
	}

	a.logger.Info("reset token issued", zap.String("user_id", user.ID))

	return resetToken, expiry, nil
}

// VerifyResetToken indicates whether the token is outstanding and unexpired,
// returning the email it belongs to.
func (a *Auth) VerifyResetToken(ctx context.Context, resetToken string) (string, error) {
	ctx, span := trace.SpanFromContext(ctx).TracerProvider().Tracer(otelName).Start(ctx, "Auth.VerifyResetToken")
	defer span.End()

	user, err := a.validResetToken(ctx, resetToken)
	if err != nil {
		return "", err
	}

	return user.Email, nil
}

// CompletePasswordReset consumes the token and stores the new password. The
// token clears in the same write, it cannot be replayed.
func (a *Auth) CompletePasswordReset(ctx context.Context, resetToken, newPassword string) error {
	ctx, span := trace.SpanFromContext(ctx).TracerProvider().Tracer(otelName).Start(ctx, "Auth.CompletePasswordReset")
	defer span.End()

	if len(newPassword) < 6 {
		return internal.NewErrorf(internal.ErrorCodeInvalidArgument, "password must be at least 6 characters")
	}

	user, err := a.validResetToken(ctx, resetToken)
	if err != nil {
		return err
	}

	hash, err := a.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	return a.repo.ResetPassword(ctx, user.ID, hash)
}

// SetRole finalizes the actor's own role selection.
func (a *Auth) SetRole(ctx context.Context, actor internal.Actor, role string) (internal.User, error) {
	ctx, span := trace.SpanFromContext(ctx).TracerProvider().Tracer(otelName).Start(ctx, "Auth.SetRole")
	defer span.End()

	if err := internal.CanPerform(actor, internal.OperationUpdateRole, nil); err != nil {
		return internal.User{}, err
	}

	parsed, err := internal.ParseRole(role)
	if err != nil {
		return internal.User{}, err
	}

	return a.repo.SetRole(ctx, actor.ID, parsed)
}

// Users returns every account, admin only.
func (a *Auth) Users(ctx context.Context, actor internal.Actor) ([]internal.User, error) {
	ctx, span := trace.SpanFromContext(ctx).TracerProvider().Tracer(otelName).Start(ctx, "Auth.Users")
	defer span.End()

	if err := internal.CanPerform(actor, internal.OperationListUsers, nil); err != nil {
		return nil, err
	}

	return a.repo.List(ctx)
}

// validResetToken resolves and checks a presented reset token. A token
// nobody holds and an expired one fail identically, so the caller can't
// learn which case occurred.
func (a *Auth) validResetToken(ctx context.Context, resetToken string) (internal.User, error) {
	if resetToken == "" {
		return internal.User{}, internal.NewErrorf(internal.ErrorCodeInvalidOrExpiredToken, "invalid or expired reset token")
	}

	user, err := a.repo.ByResetToken(ctx, resetToken)
	if err != nil {
		return internal.User{}, internal.WrapErrorf(err, internal.ErrorCodeInvalidOrExpiredToken, "invalid or expired reset token")
	}

	if user.ResetTokenExpiry == nil || !time.Now().Before(*user.ResetTokenExpiry) {
		return internal.User{}, internal.NewErrorf(internal.ErrorCodeInvalidOrExpiredToken, "invalid or expired reset token")
	}

	return user, nil
}
