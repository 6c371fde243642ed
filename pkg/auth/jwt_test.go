package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medcore/hospital-api/internal/model"
)

func testUser() *model.User {
	return &model.User{
		ID:    7,
		Email: "reception@hospital.test",
		Role:  model.RoleReceptionist,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(Config{Secret: "access-secret", RefreshSecret: "refresh-secret"})

	token, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "reception@hospital.test", claims.Email)
	assert.Equal(t, model.RoleReceptionist, claims.Role)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(Config{Secret: "access-secret", RefreshSecret: "refresh-secret"})

	token, err := svc.GenerateRefreshToken(testUser())
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.NotEmpty(t, claims.ID)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	svc := NewJWTService(Config{Secret: "access-secret", RefreshSecret: "refresh-secret"})

	refresh, err := svc.GenerateRefreshToken(testUser())
	require.NoError(t, err)
	_, err = svc.ValidateAccessToken(refresh)
	assert.Error(t, err)

	access, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)
	_, err = svc.ValidateRefreshToken(access)
	assert.Error(t, err)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService(Config{Secret: "one", RefreshSecret: "two"})
	verifier := NewJWTService(Config{Secret: "other", RefreshSecret: "two"})

	token, err := issuer.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = verifier.ValidateAccessToken(token)
	assert.Error(t, err)

	_, err = verifier.ValidateAccessToken("not-a-token")
	assert.Error(t, err)
}
