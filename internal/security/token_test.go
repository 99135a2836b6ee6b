package security_test

import (
	"testing"
	"time"

	"swiftpay-backend/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret-0123456789abcdef"

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := security.NewTokenManager(testSecret, time.Hour, 24*time.Hour)

	t.Run("Access Token", func(t *testing.T) {
		token, err := tm.GenerateAccessToken(7, "jane@example.com", true)
		require.NoError(t, err)

		claims, err := tm.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, int64(7), claims.AccountID)
		assert.Equal(t, "jane@example.com", claims.Email)
		assert.Equal(t, security.TokenTypeAccess, claims.Type)
		assert.True(t, claims.IsAdmin)
	})

	t.Run("Refresh Token", func(t *testing.T) {
		token, err := tm.GenerateRefreshToken(7, "jane@example.com")
		require.NoError(t, err)

		claims, err := tm.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, security.TokenTypeRefresh, claims.Type)
		assert.False(t, claims.IsAdmin)
	})
}

func TestTokenManager_Validate(t *testing.T) {
	tm := security.NewTokenManager(testSecret, time.Hour, 24*time.Hour)

	t.Run("Wrong Secret", func(t *testing.T) {
		other := security.NewTokenManager("another-secret-0123456789abcdefgh", time.Hour, 24*time.Hour)
		token, err := other.GenerateAccessToken(7, "jane@example.com", false)
		require.NoError(t, err)

		_, err = tm.ValidateToken(token)
		assert.ErrorIs(t, err, security.ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		expired := security.NewTokenManager(testSecret, -time.Minute, -time.Minute)
		token, err := expired.GenerateAccessToken(7, "jane@example.com", false)
		require.NoError(t, err)

		_, err = tm.ValidateToken(token)
		assert.ErrorIs(t, err, security.ErrExpiredToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := tm.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, security.ErrInvalidToken)
	})
}
