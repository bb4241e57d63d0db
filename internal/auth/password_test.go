package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamsashop/lamsa/internal/auth"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := auth.HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.NoError(t, auth.VerifyPassword("correct horse", hash))
	assert.ErrorIs(t, auth.VerifyPassword("wrong horse", hash), auth.ErrPasswordMismatch)
}

func TestHashPasswordTooShort(t *testing.T) {
	_, err := auth.HashPassword("short")
	assert.ErrorIs(t, err, auth.ErrPasswordTooShort)
}
