package auth

import (
	"testing"
	"time"

	"github.com/fieldsales/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "0123456789abcdef0123456789abcdef",
		AccessTokenExpiration: expiration,
		Issuer:                "fieldsales-backend",
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestService(15 * time.Minute)
	userID := uuid.New()

	token, expiresAt, err := svc.GenerateToken(userID, "hjkim")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 2*time.Second)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "hjkim", claims.Username)
	assert.Equal(t, "fieldsales-backend", claims.Issuer)

	parsed, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := newTestService(-1 * time.Minute)

	token, _, err := svc.GenerateToken(uuid.New(), "hjkim")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_RejectsTamperedToken(t *testing.T) {
	svc := newTestService(15 * time.Minute)

	token, _, err := svc.GenerateToken(uuid.New(), "hjkim")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsTokenSignedWithDifferentSecret(t *testing.T) {
	svc := newTestService(15 * time.Minute)
	other := NewJWTService(config.JWTConfig{
		Secret:                "ffffffffffffffffffffffffffffffff",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "fieldsales-backend",
	})

	token, _, err := other.GenerateToken(uuid.New(), "hjkim")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc := newTestService(15 * time.Minute)
	_, err := svc.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
