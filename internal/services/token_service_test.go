package services_test

import (
	"testing"
	"time"

	"pustaka/internal/config"
	"pustaka/internal/models"
	"pustaka/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokenService(accessTTL time.Duration) *services.TokenService {
	return services.NewTokenService(config.JWTConfig{
		Secret:     "test_jwt_secret",
		AccessTTL:  accessTTL,
		RefreshTTL: 30 * 24 * time.Hour,
	})
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := testTokenService(time.Hour)
	user := &models.User{ID: "user-123", Email: "test@example.com"}

	token, err := svc.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "test@example.com", claims.Email)
}

func TestTokenService_IssueRefresh(t *testing.T) {
	svc := testTokenService(time.Hour)
	user := &models.User{ID: "user-123", Email: "test@example.com"}

	token, err := svc.IssueRefresh(user)
	require.NoError(t, err)

	// Refresh tokens verify like access tokens and carry the same identity.
	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)

	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test_jwt_secret"), nil
	})
	require.NoError(t, err)
	mapClaims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "refresh", mapClaims["type"])
}

func TestTokenService_VerifyExpired(t *testing.T) {
	svc := testTokenService(-time.Hour)
	token, err := svc.Issue(&models.User{ID: "user-123", Email: "test@example.com"})
	require.NoError(t, err)

	_, err = testTokenService(time.Hour).Verify(token)
	assert.ErrorIs(t, err, services.ErrTokenExpired)
}

func TestTokenService_VerifyInvalid(t *testing.T) {
	svc := testTokenService(time.Hour)

	// Malformed token.
	_, err := svc.Verify("not.a.token")
	assert.ErrorIs(t, err, services.ErrTokenInvalid)

	// Token signed with a different secret.
	other := services.NewTokenService(config.JWTConfig{Secret: "other_secret", AccessTTL: time.Hour})
	token, err := other.Issue(&models.User{ID: "user-123", Email: "test@example.com"})
	require.NoError(t, err)
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, services.ErrTokenInvalid)

	// Correctly signed token without a user id claim.
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "test@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := raw.SignedString([]byte("test_jwt_secret"))
	require.NoError(t, err)
	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, services.ErrTokenInvalid)
}

func TestExtractBearer(t *testing.T) {
	token, ok := services.ExtractBearer("Bearer abc.def.ghi")
	assert.True(t, ok)
	assert.Equal(t, "abc.def.ghi", token)

	for _, header := range []string{
		"",
		"Bearer",
		"Bearer ",
		"bearer abc.def.ghi",
		"Basic abc.def.ghi",
		"Bearer abc def",
	} {
		_, ok := services.ExtractBearer(header)
		assert.False(t, ok, "header %q should not yield a token", header)
	}
}
