package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("sekret123")
	require.NoError(t, err)
	require.NotEqual(t, "sekret123", hash)

	assert.True(t, CheckPassword(hash, "sekret123"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
