package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendora/vendora/app/services"
	"github.com/vendora/vendora/app/services/servicestest"
	"github.com/vendora/vendora/pkg/auth"
)

func TestRegisterAndLogin(t *testing.T) {
	users := &servicestest.Users{}
	svc := services.NewAuthService(users)
	ctx := context.Background()

	user, err := svc.Register(ctx, "jane", "jane@example.com", "secret123", "Vendor")
	require.NoError(t, err)
	assert.False(t, user.ID.IsZero())
	assert.Equal(t, auth.RoleVendor, user.Role)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.False(t, user.CreatedAt.IsZero())

	token, loggedIn, err := svc.Login(ctx, "jane@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.Subject)
	assert.Equal(t, "Vendor", claims.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := &servicestest.Users{}
	svc := services.NewAuthService(users)
	ctx := context.Background()

	_, err := svc.Register(ctx, "jane", "jane@example.com", "secret123", "Customer")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "imposter", "jane@example.com", "hunter22", "Customer")
	assert.ErrorIs(t, err, services.ErrEmailTaken)
}

func TestRegisterUnknownRoleFallsBack(t *testing.T) {
	svc := services.NewAuthService(&servicestest.Users{})

	user, err := svc.Register(context.Background(), "joe", "joe@example.com", "secret123", "root")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleCustomer, user.Role)
}

func TestLoginFailures(t *testing.T) {
	users := &servicestest.Users{}
	svc := services.NewAuthService(users)
	ctx := context.Background()

	_, err := svc.Register(ctx, "jane", "jane@example.com", "secret123", "Customer")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "jane@example.com", "wrong-password")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}
