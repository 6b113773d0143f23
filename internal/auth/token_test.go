package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-32-characters-long-for-testing"

func TestTokenManager_IssueAndValidateSession(t *testing.T) {
	tm := NewTokenManager(testSecret, 72*time.Hour)

	token, expiresAt, err := tm.IssueSession("user123", "user@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(72*time.Hour), expiresAt, 5*time.Second)

	claims, err := tm.ValidateSession(token)
	require.NoError(t, err)
	assert.Equal(t, "user123", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenManager_ValidateSession_ExpiredToken(t *testing.T) {
	tm := NewTokenManager(testSecret, -time.Minute)

	token, _, err := tm.IssueSession("user123", "user@example.com")
	require.NoError(t, err)

	_, err = tm.ValidateSession(token)
	assert.Error(t, err)
}

func TestTokenManager_ValidateSession_WrongSecret(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)
	other := NewTokenManager("another-secret-32-characters-long!!", time.Hour)

	token, _, err := tm.IssueSession("user123", "user@example.com")
	require.NoError(t, err)

	_, err = other.ValidateSession(token)
	assert.Error(t, err)
}

func TestTokenManager_ValidateSession_Garbage(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)

	_, err := tm.ValidateSession("not-a-jwt")
	assert.Error(t, err)
}

func TestTokenManager_ValidateSession_RejectsUnsignedAlg(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": "user123",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tm.ValidateSession(tokenString)
	assert.Error(t, err)
}
