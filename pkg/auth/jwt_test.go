package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendora/vendora/pkg/auth"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := auth.GenerateToken("64f1c0ffee0000000000aaaa", "jane@example.com", "Vendor")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "64f1c0ffee0000000000aaaa", claims.Subject)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "Vendor", claims.Role)
}

func TestTamperedTokenRejected(t *testing.T) {
	token, err := auth.GenerateToken("user-1", "a@b.com", "Customer")
	require.NoError(t, err)

	// Flip a character in the signature segment.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	parts[2] = string(sig)

	_, err = auth.ValidateToken(strings.Join(parts, "."))
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	_, err := auth.ValidateToken("not-a-jwt")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, auth.CheckPassword(hash, "s3cret-password"))
	assert.False(t, auth.CheckPassword(hash, "wrong"))
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, auth.RoleAdmin, auth.ParseRole("Admin"))
	assert.Equal(t, auth.RoleVendor, auth.ParseRole("Vendor"))
	assert.Equal(t, auth.RoleCustomer, auth.ParseRole("Customer"))
	// unknown roles fall back to the least privileged
	assert.Equal(t, auth.RoleCustomer, auth.ParseRole("superuser"))
	assert.Equal(t, auth.RoleCustomer, auth.ParseRole(""))
}
