package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("testpass123")
	require.NoError(t, err)

	assert.NotEqual(t, "testpass123", hash)
	assert.True(t, CompareHashAndPassword(hash, "testpass123"))
	assert.False(t, CompareHashAndPassword(hash, "wrongpass"))
}

func TestCompareHashAndPassword_BlankPassword(t *testing.T) {
	hash, err := HashPassword("")
	require.NoError(t, err)

	assert.False(t, CompareHashAndPassword(hash, ""))
}

func TestUnusablePassword(t *testing.T) {
	a := UnusablePassword()
	b := UnusablePassword()

	assert.True(t, strings.HasPrefix(a, "!"))
	assert.NotEqual(t, a, b)
	assert.False(t, CompareHashAndPassword(a, "anything"))
	assert.False(t, CompareHashAndPassword("", "anything"))
}
