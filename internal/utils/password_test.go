package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-phrase")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-phrase", hash)

	assert.NoError(t, CheckPassword(hash, "s3cret-phrase"))
	assert.Error(t, CheckPassword(hash, "wrong"))
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	_, err := HashPassword("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}
