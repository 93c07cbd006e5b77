package middleware

import (
	"testing"
	"time"

	"studytrack_go/config"
	"studytrack_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestConfig(t *testing.T) {
	t.Helper()
	prev := config.AppConfig
	config.AppConfig = &config.Config{
		JWTSecret:           "test-secret-at-least-16-chars",
		JWTExpiresIn:        time.Hour,
		JWTRefreshExpiresIn: 7 * 24 * time.Hour,
		AppEnv:              "test",
	}
	t.Cleanup(func() { config.AppConfig = prev })
}

func testUser() *models.User {
	return &models.User{
		UUIDModel: models.UUIDModel{ID: "5f0c1a08-8f57-4f3e-9f2a-0f8a2f9f4f10"},
		Email:     "asha@example.com",
		Name:      "Asha Rao",
		Role:      models.RoleStudent,
		IsActive:  true,
	}
}

func TestGenerateTokenPairRoundTrip(t *testing.T) {
	setTestConfig(t)
	user := testUser()

	access, refresh, err := GenerateTokenPair(user)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	accessClaims, err := ParseToken(access)
	require.NoError(t, err)
	assert.Equal(t, user.ID, accessClaims.UserID)
	assert.Equal(t, user.Email, accessClaims.Email)
	assert.Equal(t, models.RoleStudent, accessClaims.Role)
	assert.Equal(t, TokenTypeAccess, accessClaims.TokenType)

	refreshClaims, err := ParseToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, refreshClaims.TokenType)
	assert.True(t, refreshClaims.ExpiresAt.After(accessClaims.ExpiresAt.Time),
		"refresh token must outlive the access token")
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	setTestConfig(t)

	access, _, err := GenerateTokenPair(testUser())
	require.NoError(t, err)

	config.AppConfig.JWTSecret = "another-secret-entirely-here"
	_, err = ParseToken(access)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	setTestConfig(t)
	config.AppConfig.JWTExpiresIn = -time.Minute

	access, _, err := GenerateTokenPair(testUser())
	require.NoError(t, err)

	_, err = ParseToken(access)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	setTestConfig(t)

	_, err := ParseToken("not.a.jwt")
	assert.Error(t, err)
}
