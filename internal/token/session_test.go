package token_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/sanLimbu/taskboard-api/internal"
	"github.com/sanLimbu/taskboard-api/internal/token"
)

func TestSessionManager_IssueAndValidate(t *testing.T) {
	t.Parallel()

	manager := token.NewSessionManager("test-secret")

	signed, err := manager.Issue("c30d5ae1-af2c-42c0-b1c2-44b011c12f6e")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	userID, err := manager.Validate(signed)
	require.NoError(t, err)
	require.Equal(t, "c30d5ae1-af2c-42c0-b1c2-44b011c12f6e", userID)
}

func TestSessionManager_Validate_WrongSecret(t *testing.T) {
	t.Parallel()

	signed, err := token.NewSessionManager("secret-one").Issue("c30d5ae1-af2c-42c0-b1c2-44b011c12f6e")
	require.NoError(t, err)

	_, err = token.NewSessionManager("secret-two").Validate(signed)
	requireUnauthenticated(t, err)
}

func TestSessionManager_Validate_Tampered(t *testing.T) {
	t.Parallel()

	manager := token.NewSessionManager("test-secret")

	signed, err := manager.Issue("c30d5ae1-af2c-42c0-b1c2-44b011c12f6e")
	require.NoError(t, err)

	parts := strings.Split(signed, ".")
	require.Len(t, parts, 3)

	tampered := parts[0] + "." + parts[1] + "A." + parts[2]

	_, err = manager.Validate(tampered)
	requireUnauthenticated(t, err)
}

func TestSessionManager_Validate_Expired(t *testing.T) {
	t.Parallel()

	now := time.Now()

	claims := token.SessionClaims{
		UserID: "c30d5ae1-af2c-42c0-b1c2-44b011c12f6e",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = token.NewSessionManager("test-secret").Validate(signed)
	requireUnauthenticated(t, err)
}

func TestSessionManager_Validate_Garbage(t *testing.T) {
	t.Parallel()

	_, err := token.NewSessionManager("test-secret").Validate("not-a-token")
	requireUnauthenticated(t, err)
}

func requireUnauthenticated(t *testing.T, err error) {
	t.Helper()

	var ierr *internal.Error
	require.ErrorAs(t, err, &ierr)
	require.Equal(t, internal.ErrorCodeUnauthenticated, ierr.Code())
}
