package token_test

import (
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sanLimbu/taskboard-api/internal/token"
)

func TestNewResetToken(t *testing.T) {
	t.Parallel()

	before := time.Now()

	resetToken, expiry, err := token.NewResetToken()
	require.NoError(t, err)

	require.Len(t, resetToken, 64)

	_, err = hex.DecodeString(resetToken)
	require.NoError(t, err)

	require.WithinDuration(t, before.Add(token.ResetTokenTTL), expiry, time.Minute)
}

func TestNewResetToken_Unique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})

	for i := 0; i < 100; i++ {
		resetToken, _, err := token.NewResetToken()
		require.NoError(t, err)

		_, dup := seen[resetToken]
		require.False(t, dup)

		seen[resetToken] = struct{}{}
	}
}
