// Package token implements the two token kinds used by the service: the
// stateless signed session token and the stateful one-time reset token.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sanLimbu/taskboard-api/internal"
)

// SessionDuration is how long an issued session token remains valid. There
// is no server-side revocation, logout is a client-side credential discard.
const SessionDuration = 7 * 24 * time.Hour

// SessionClaims carries the identity a session token was issued for.
type SessionClaims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// SessionManager issues and validates the stateless bearer tokens proving
// identity for the token's validity window.
type SessionManager struct {
	secret []byte
}

// NewSessionManager instantiates the manager with the HMAC signing secret.
func NewSessionManager(secret string) *SessionManager {
	return &SessionManager{
		secret: []byte(secret),
	}
}

// Issue returns a signed token for the user, expiring SessionDuration from now.
func (m *SessionManager) Issue(userID string) (string, error) {
	now := time.Now()

	claims := SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionDuration)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", internal.WrapErrorf(err, internal.ErrorCodeUnknown, "jwt.SignedString")
	}

	return signed, nil
}

// Validate verifies the signature and expiry, returning the user id the
// token was issued for.
func (m *SessionManager) Validate(tokenString string) (string, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, internal.NewErrorf(internal.ErrorCodeUnauthenticated, "unexpected signing method: %v", t.Header["alg"])
		}

		return m.secret, nil
	})
	if err != nil {
		return "", internal.WrapErrorf(err, internal.ErrorCodeUnauthenticated, "jwt.ParseWithClaims")
	}

	claims, ok := tok.Claims.(*SessionClaims)
	if !ok || !tok.Valid {
		return "", internal.NewErrorf(internal.ErrorCodeUnauthenticated, "invalid token")
	}

	return claims.UserID, nil
}
