// Package redis implements a cache decorator over the account store, used
// to keep bearer-token resolution off the database on every request.
package redis

import (
	"context"
	"encoding/json"
	"time"

	rv8 "github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.7.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/sanLimbu/taskboard-api/internal"
)

const otelName = "github.com/sanLimbu/taskboard-api/internal/redis"

// UserStore defines the datastore being decorated.
type UserStore interface {
	Create(ctx context.Context, params internal.CreateUserParams) (internal.User, error)
	ByEmail(ctx context.Context, email string) (internal.User, error)
	ByID(ctx context.Context, id string) (internal.User, error)
	ByResetToken(ctx context.Context, resetToken string) (internal.User, error)
	SetRole(ctx context.Context, id string, role internal.Role) (internal.User, error)
	SetResetToken(ctx context.Context, id, resetToken string, expiry time.Time) error
	ResetPassword(ctx context.Context, id, passwordHash string) error
	List(ctx context.Context) ([]internal.User, error)
}

// User caches id lookups in front of the wrapped store. Mutations write
// through and refresh or evict the cached record, so the middleware never
// authorizes against a role older than the last write.
type User struct {
	client     *rv8.Client
	orig       UserStore
	expiration time.Duration
}

// NewUser instantiates the decorated User store.
func NewUser(client *rv8.Client, orig UserStore) *User {
	return &User{
		client:     client,
		orig:       orig,
		expiration: 15 * time.Minute,
	}
}

// Create delegates and primes the cache.
func (u *User) Create(ctx context.Context, params internal.CreateUserParams) (internal.User, error) {
	defer u.newOTELSpan(ctx, "User.Create").End()

	user, err := u.orig.Create(ctx, params)
	if err != nil {
		return internal.User{}, err
	}

	u.set(ctx, user)

	return user, nil
}

// ByEmail passes through, only id lookups are cached.
func (u *User) ByEmail(ctx context.Context, email string) (internal.User, error) {
	defer u.newOTELSpan(ctx, "User.ByEmail").End()

	return u.orig.ByEmail(ctx, email)
}

// ByID returns the cached record when present, falling back to the wrapped
// store and caching the result.
func (u *User) ByID(ctx context.Context, id string) (internal.User, error) {
	defer u.newOTELSpan(ctx, "User.ByID").End()

	if val, err := u.client.Get(ctx, key(id)).Bytes(); err == nil {
		var res cachedUser
		if err := json.Unmarshal(val, &res); err == nil {
			return res.user(), nil
		}
	}

	user, err := u.orig.ByID(ctx, id)
	if err != nil {
		return internal.User{}, err
	}

	u.set(ctx, user)

	return user, nil
}

// ByResetToken passes through.
func (u *User) ByResetToken(ctx context.Context, resetToken string) (internal.User, error) {
	defer u.newOTELSpan(ctx, "User.ByResetToken").End()

	return u.orig.ByResetToken(ctx, resetToken)
}

// SetRole delegates and refreshes the cached record.
func (u *User) SetRole(ctx context.Context, id string, role internal.Role) (internal.User, error) {
	defer u.newOTELSpan(ctx, "User.SetRole").End()

	user, err := u.orig.SetRole(ctx, id, role)
	if err != nil {
		return internal.User{}, err
	}

	u.set(ctx, user)

	return user, nil
}

// SetResetToken delegates and evicts the cached record.
func (u *User) SetResetToken(ctx context.Context, id, resetToken string, expiry time.Time) error {
	defer u.newOTELSpan(ctx, "User.SetResetToken").End()

	if err := u.orig.SetResetToken(ctx, id, resetToken, expiry); err != nil {
		return err
	}

	u.client.Del(ctx, key(id))

	return nil
}

// ResetPassword delegates and evicts the cached record.
func (u *User) ResetPassword(ctx context.Context, id, passwordHash string) error {
	defer u.newOTELSpan(ctx, "User.ResetPassword").End()

	if err := u.orig.ResetPassword(ctx, id, passwordHash); err != nil {
		return err
	}

	u.client.Del(ctx, key(id))

	return nil
}

// List passes through.
func (u *User) List(ctx context.Context) ([]internal.User, error) {
	defer u.newOTELSpan(ctx, "User.List").End()

	return u.orig.List(ctx)
}

// cachedUser is the projection written to the cache. The password hash and
// reset-token state never leave the primary store.
type cachedUser struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Email string        `json:"email"`
	Role  internal.Role `json:"role"`
}

func newCachedUser(user internal.User) cachedUser {
	return cachedUser{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
}

func (c cachedUser) user() internal.User {
	return internal.User{
		ID:    c.ID,
		Name:  c.Name,
		Email: c.Email,
		Role:  c.Role,
	}
}

func (u *User) set(ctx context.Context, user internal.User) {
	val, err := json.Marshal(newCachedUser(user))
	if err != nil {
		return
	}

	u.client.Set(ctx, key(user.ID), val, u.expiration)
}

func key(id string) string {
	return "users:" + id
}

func (u *User) newOTELSpan(ctx context.Context, name string) trace.Span {
	_, span := otel.Tracer(otelName).Start(ctx, name)

	span.SetAttributes(attribute.KeyValue{
		Key:   semconv.DBSystemKey,
		Value: attribute.StringValue("redis"),
	})

	return span
}
