package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The secret is only known once configuration has been loaded, well after
// this package's init has run, so tokens must work with a secret supplied
// at startup rather than one snapshotted from the environment.
func TestJWTSecretConfiguredAfterInit(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	SetJWTSecret("late-bound-secret")
	defer SetJWTSecret("")

	token, err := GenerateJWT("user-42", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestJWTFallsBackToEnvSecret(t *testing.T) {
	SetJWTSecret("")
	t.Setenv("JWT_SECRET", "env-only-secret")

	token, err := GenerateJWT("user-7", "staff")
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "staff", claims.Role)
}

func TestJWTWithoutSecret(t *testing.T) {
	SetJWTSecret("")
	t.Setenv("JWT_SECRET", "")

	_, err := GenerateJWT("user-1", "staff")
	require.Error(t, err)

	_, err = ValidateJWT("whatever")
	require.Error(t, err)
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	SetJWTSecret("first-secret")
	defer SetJWTSecret("")

	token, err := GenerateJWT("user-9", "staff")
	require.NoError(t, err)

	SetJWTSecret("second-secret")
	_, err = ValidateJWT(token)
	require.Error(t, err)
}
