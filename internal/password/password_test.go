package password_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sanLimbu/taskboard-api/internal/password"
)

func TestHasher(t *testing.T) {
	t.Parallel()

	hasher := password.NewHasher()

	hash, err := hasher.Hash("s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hash)

	require.True(t, hasher.Verify("s3cret-pass", hash))
	require.False(t, hasher.Verify("wrong-pass", hash))
	require.False(t, hasher.Verify("s3cret-pass", "not-a-hash"))
}

func TestHasher_DistinctSalts(t *testing.T) {
	t.Parallel()

	hasher := password.NewHasher()

	first, err := hasher.Hash("s3cret-pass")
	require.NoError(t, err)

	second, err := hasher.Hash("s3cret-pass")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}
