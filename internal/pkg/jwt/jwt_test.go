package jwt_test

import (
	"context"
	"testing"

	"github.com/flash-erp/erp-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := jwt.NewJWTService("test-secret", "1h")

	token, expiresAt, err := svc.GenerateAccessToken("payroll-clerk", "operator")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotZero(t, expiresAt)

	parsed, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	claims, err := parsed.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "payroll-clerk", claims["username"])
	assert.Equal(t, "operator", claims["role"])
	assert.Equal(t, jwt.TokenTypeAccess, claims["type"])
}

func TestGenerateAccessToken_InvalidDuration(t *testing.T) {
	svc := jwt.NewJWTService("test-secret", "forever")

	_, _, err := svc.GenerateAccessToken("payroll-clerk", "operator")
	assert.Error(t, err)
}

func TestDecode_WrongSecret(t *testing.T) {
	token, _, err := jwt.NewJWTService("secret-a", "1h").GenerateAccessToken("payroll-clerk", "operator")
	require.NoError(t, err)

	_, err = jwt.NewJWTService("secret-b", "1h").JWTAuth().Decode(token)
	assert.Error(t, err)
}
