package auth

import (
	"context"
	"testing"
	"time"

	"fuelflow/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(t *testing.T) *JWTService {
	svc, err := NewJWTService(&config.AuthConfig{
		Provider:  "jwt",
		JWTSecret: "test_secret_key_very_long_for_testing",
	})
	require.NoError(t, err)

	return svc
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc := newTestJWTService(t)

	token, err := svc.IssueToken("admin-uid", "admin@example.com", time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.VerifyToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "admin-uid", claims.UID)
	assert.Equal(t, "admin@example.com", claims.Email)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := newTestJWTService(t)

	token, err := svc.IssueToken("admin-uid", "", -time.Minute)
	require.NoError(t, err)

	_, err = svc.VerifyToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_WrongSecret(t *testing.T) {
	svc := newTestJWTService(t)
	other, err := NewJWTService(&config.AuthConfig{JWTSecret: "another_secret"})
	require.NoError(t, err)

	token, err := other.IssueToken("admin-uid", "", time.Hour)
	require.NoError(t, err)

	_, err = svc.VerifyToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_MissingSubject(t *testing.T) {
	svc := newTestJWTService(t)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(svc.secret)
	require.NoError(t, err)

	_, err = svc.VerifyToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_EmptySecret(t *testing.T) {
	_, err := NewJWTService(&config.AuthConfig{})
	assert.Error(t, err)
}
