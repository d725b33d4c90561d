package rest

import (
	"context"
	"net/http"
	"strings"

	"github.com/sanLimbu/taskboard-api/internal"
	"github.com/sanLimbu/taskboard-api/internal/token"
)

type ctxKey uint8

const actorKey ctxKey = 0

// UserResolver turns the identity carried in a session token into a full
// account record.
type UserResolver interface {
	ByID(ctx context.Context, id string) (internal.User, error)
}

// Authenticator validates the bearer token and stores the resolved actor in
// the request context. Requests without a valid identity never reach the
// wrapped handler.
func Authenticator(sessions *token.SessionManager, users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				renderErrorResponse(r.Context(), w, "no token provided",
					internal.NewErrorf(internal.ErrorCodeUnauthenticated, "missing authorization header"))
				return
			}

			raw := strings.TrimPrefix(header, "Bearer ")
			if raw == header {
				renderErrorResponse(r.Context(), w, "invalid token",
					internal.NewErrorf(internal.ErrorCodeUnauthenticated, "malformed authorization header"))
				return
			}

			userID, err := sessions.Validate(raw)
			if err != nil {
				renderErrorResponse(r.Context(), w, "invalid token", err)
				return
			}

			user, err := users.ByID(r.Context(), userID)
			if err != nil {
				renderErrorResponse(r.Context(), w, "user not found",
					internal.WrapErrorf(err, internal.ErrorCodeUnauthenticated, "users.ByID"))
				return
			}

			actor := internal.Actor{
				ID:   user.ID,
				Role: user.Role,
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorKey, actor)))
		})
	}
}

// actorFromRequest returns the actor resolved by the Authenticator, the
// zero Actor when the middleware did not run.
func actorFromRequest(r *http.Request) internal.Actor {
	actor, _ := r.Context().Value(actorKey).(internal.Actor)

	return actor
}
