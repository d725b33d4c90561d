package redis

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sanLimbu/taskboard-api/internal"
)

func TestCachedUserProjection(t *testing.T) {
	t.Parallel()

	resetToken := "b7c9d4e0f1a2b3c4d5e6f708192a3b4c5d6e7f8091a2b3c4d5e6f708192a3b4c"
	resetTokenExpiry := time.Now().Add(time.Hour)

	user := internal.User{
		ID:               "a2d9f23c-5c42-4f4a-9c8a-91e2f5d4c3b1",
		Name:             "Alice",
		Email:            "alice@example.com",
		PasswordHash:     "$2a$10$N9qo8uLOickgx2ZMRZoMye",
		Role:             internal.RoleAdmin,
		ResetToken:       &resetToken,
		ResetTokenExpiry: &resetTokenExpiry,
	}

	val, err := json.Marshal(newCachedUser(user))
	require.NoError(t, err)

	require.NotContains(t, string(val), user.PasswordHash)
	require.NotContains(t, string(val), resetToken)

	var got cachedUser

	require.NoError(t, json.Unmarshal(val, &got))

	res := got.user()

	require.Equal(t, user.ID, res.ID)
	require.Equal(t, user.Name, res.Name)
	require.Equal(t, user.Email, res.Email)
	require.Equal(t, user.Role, res.Role)
	require.Empty(t, res.PasswordHash)
	require.Nil(t, res.ResetToken)
	require.Nil(t, res.ResetTokenExpiry)
}
