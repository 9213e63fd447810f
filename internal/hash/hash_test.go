package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	h, err := HashPassword("1234")
	require.NoError(t, err)
	assert.NotEqual(t, "1234", h)

	assert.True(t, CheckPassword(h, "1234"))
	assert.False(t, CheckPassword(h, "4321"))
	assert.False(t, CheckPassword("not-a-hash", "1234"))
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword("same")
	require.NoError(t, err)
	b, err := HashPassword("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
