package passhash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("secret")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "secret", hash)

	assert.True(t, Verify("secret", hash))
	assert.False(t, Verify("not-secret", hash))
}

func TestHash_Salted(t *testing.T) {
	first, err := Hash("secret")
	require.NoError(t, err)
	second, err := Hash("secret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, Verify("secret", first))
	assert.True(t, Verify("secret", second))
}

func TestVerify_BadHash(t *testing.T) {
	assert.False(t, Verify("secret", "not-a-bcrypt-hash"))
}
