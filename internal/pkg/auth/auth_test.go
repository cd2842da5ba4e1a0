package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("student123")
	require.NoError(t, err)
	assert.NotEqual(t, "student123", hash)

	assert.True(t, CheckPassword(hash, "student123"))
	assert.False(t, CheckPassword(hash, "Student123"))
	assert.False(t, CheckPassword("", "student123"))
}

func newTestJWTService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:      "0123456789abcdef0123456789abcdef",
		AccessTokenExp: exp,
		TokenIssuer:    "test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	service := newTestJWTService(time.Hour)
	userID := uuid.New()

	token, expiresIn, err := service.GenerateAccessToken(userID, "ada@example.edu", "2024CS001")
	require.NoError(t, err)
	assert.Equal(t, 3600, expiresIn)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "ada@example.edu", claims.Email)
	assert.Equal(t, "2024CS001", claims.StudentID)
	assert.Equal(t, "test", claims.Issuer)
}

func TestValidateToken(t *testing.T) {
	t.Run("expired token", func(t *testing.T) {
		service := newTestJWTService(-time.Minute)
		token, _, err := service.GenerateAccessToken(uuid.New(), "ada@example.edu", "")
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, _, err := newTestJWTService(time.Hour).GenerateAccessToken(uuid.New(), "ada@example.edu", "")
		require.NoError(t, err)

		other := NewJWTService(JWTConfig{
			SecretKey:      "ffffffffffffffffffffffffffffffff",
			AccessTokenExp: time.Hour,
			TokenIssuer:    "test",
		})
		_, err = other.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("garbage input", func(t *testing.T) {
		_, err := newTestJWTService(time.Hour).ValidateToken("not.a.token")
		assert.Error(t, err)
	})
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ExtractBearerToken("abc.def.ghi")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ExtractBearerToken("Basic dXNlcjpwYXNz")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
