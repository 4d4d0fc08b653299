package exts

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, method jwt.SigningMethod, secret string, claims TokenClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestReadToken(t *testing.T) {
	viper.Set("security.jwt_secret", "test-secret")
	defer viper.Set("security.jwt_secret", "")

	claims, err := ReadToken(sign(t, jwt.SigningMethodHS256, "test-secret", TokenClaims{
		ID:    3,
		Name:  "Carol",
		Email: "carol@example.com",
	}))
	require.NoError(t, err)
	assert.EqualValues(t, 3, claims.ID)
	assert.Equal(t, "Carol", claims.Name)

	_, err = ReadToken(sign(t, jwt.SigningMethodHS256, "other-secret", TokenClaims{ID: 3}))
	assert.Error(t, err)

	_, err = ReadToken(sign(t, jwt.SigningMethodHS512, "test-secret", TokenClaims{ID: 3}))
	assert.Error(t, err)

	_, err = ReadToken(sign(t, jwt.SigningMethodHS256, "test-secret", TokenClaims{
		ID: 3,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}))
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestReadTokenWithoutSecret(t *testing.T) {
	viper.Set("security.jwt_secret", "")

	_, err := ReadToken(sign(t, jwt.SigningMethodHS256, "anything", TokenClaims{ID: 1}))
	assert.Error(t, err)
}
