package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunleaf/sunleaf-api/internal/config"
)

func testManager(ttl time.Duration) *Manager {
	return NewManager(config.AuthConfig{
		JWTSecret:  "test-secret",
		TokenTTL:   ttl,
		BcryptCost: 4, // minimum cost, keeps the test fast
	})
}

func TestPasswordHashRoundTrip(t *testing.T) {
	m := testManager(time.Hour)

	hash, err := m.HashPassword("hunter2hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2hunter2", hash)

	assert.True(t, m.CheckPassword(hash, "hunter2hunter2"))
	assert.False(t, m.CheckPassword(hash, "wrong-password"))
}

func TestTokenRoundTrip(t *testing.T) {
	m := testManager(time.Hour)

	token, err := m.IssueToken("user-123")
	require.NoError(t, err)

	userID, err := m.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestVerifyToken_Expired(t *testing.T) {
	m := testManager(-time.Minute)

	token, err := m.IssueToken("user-123")
	require.NoError(t, err)

	_, err = m.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	m := testManager(time.Hour)
	other := NewManager(config.AuthConfig{JWTSecret: "other-secret", TokenTTL: time.Hour, BcryptCost: 4})

	token, err := m.IssueToken("user-123")
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_Garbage(t *testing.T) {
	m := testManager(time.Hour)

	_, err := m.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.VerifyToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
