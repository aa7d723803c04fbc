package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/bcrypt"
)

func TestCompareSecret(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("sync-me"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, CompareSecret(string(hash), "sync-me"))
	assert.False(t, CompareSecret(string(hash), "wrong"))
	assert.False(t, CompareSecret("not-a-hash", "sync-me"))
}
