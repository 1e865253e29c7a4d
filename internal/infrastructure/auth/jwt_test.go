package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret", 15)

	token, err := svc.Generate(42, RoleMember)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, RoleMember, claims.Role)
	assert.False(t, claims.IsAdmin())
}

func TestJWTService_AdminRole(t *testing.T) {
	svc := NewJWTService("test-secret", 15)

	token, err := svc.Generate(1, RoleAdmin)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin())
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a", 15).Generate(1, RoleMember)
	require.NoError(t, err)

	_, err = NewJWTService("secret-b", 15).Verify(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	_, err := NewJWTService("secret", 15).Verify("not-a-token")
	assert.Error(t, err)
}
