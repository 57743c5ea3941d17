package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_GenerateAndParse(t *testing.T) {
	m := NewJWTManager("secret", 0)
	issued := time.Now().Truncate(time.Second)

	tok, err := m.GenerateToken("user-1", "key-1", issued)
	require.NoError(t, err)

	claims, err := m.ParseToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "key-1", claims.ID)
	assert.Nil(t, claims.ExpiresAt)
	assert.Same(t, m, DefaultJWT())
}

func TestJWTManager_Deterministic(t *testing.T) {
	m := NewJWTManager("secret", 0)
	issued := time.Unix(1700000000, 0)

	a, err := m.GenerateToken("user-1", "key-1", issued)
	require.NoError(t, err)
	b, err := m.GenerateToken("user-1", "key-1", issued)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestJWTManager_Expired(t *testing.T) {
	m := NewJWTManager("secret", time.Minute)

	tok, err := m.GenerateToken("user-1", "key-1", time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, err = m.ParseToken(tok)
	assert.Error(t, err)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	tok, err := NewJWTManager("right", 0).GenerateToken("user-1", "key-1", time.Now())
	require.NoError(t, err)

	_, err = NewJWTManager("wrong", 0).ParseToken(tok)
	assert.Error(t, err)
}

func TestJWTManager_Garbage(t *testing.T) {
	_, err := NewJWTManager("secret", 0).ParseToken("not-a-token")
	assert.Error(t, err)
}
