package authz_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vendora/vendora/app/authz"
	"github.com/vendora/vendora/app/models"
	"github.com/vendora/vendora/pkg/auth"
	"github.com/vendora/vendora/pkg/middleware"
)

// fakeDirectory maps user ids to their vendor profile.
type fakeDirectory map[string]*models.Vendor

func (d fakeDirectory) GetByUserID(_ context.Context, userID string) (*models.Vendor, error) {
	return d[userID], nil
}

func vendorWithID(hex, userID string) *models.Vendor {
	oid, _ := primitive.ObjectIDFromHex(hex)
	return &models.Vendor{ID: oid, UserID: userID}
}

const (
	ownVendorHex   = "64a000000000000000000001"
	otherVendorHex = "64a000000000000000000002"
)

func principal(role auth.Role) middleware.Principal {
	return middleware.Principal{UserID: "user-1", Email: "u@example.com", Role: role}
}

func TestProductCreate(t *testing.T) {
	dir := fakeDirectory{"user-1": vendorWithID(ownVendorHex, "user-1")}

	t.Run("vendor is forced onto own vendor id", func(t *testing.T) {
		got, err := authz.ProductCreate(context.Background(), principal(auth.RoleVendor), otherVendorHex, dir)
		require.NoError(t, err)
		assert.Equal(t, ownVendorHex, got)
	})

	t.Run("vendor without profile is rejected", func(t *testing.T) {
		_, err := authz.ProductCreate(context.Background(), principal(auth.RoleVendor), "", fakeDirectory{})
		assert.ErrorIs(t, err, authz.ErrForbidden)
	})

	t.Run("admin keeps the requested vendor id", func(t *testing.T) {
		got, err := authz.ProductCreate(context.Background(), principal(auth.RoleAdmin), otherVendorHex, dir)
		require.NoError(t, err)
		assert.Equal(t, otherVendorHex, got)
	})

	t.Run("customer is rejected", func(t *testing.T) {
		_, err := authz.ProductCreate(context.Background(), principal(auth.RoleCustomer), "", dir)
		assert.ErrorIs(t, err, authz.ErrForbidden)
	})
}

func TestProductMutate(t *testing.T) {
	dir := fakeDirectory{"user-1": vendorWithID(ownVendorHex, "user-1")}
	owned := &models.Product{VendorID: ownVendorHex}
	foreign := &models.Product{VendorID: otherVendorHex}

	t.Run("vendor may touch own product", func(t *testing.T) {
		got, err := authz.ProductMutate(context.Background(), principal(auth.RoleVendor), owned, otherVendorHex, dir)
		require.NoError(t, err)
		// ownership cannot be reassigned by the vendor
		assert.Equal(t, ownVendorHex, got)
	})

	t.Run("vendor may not touch a foreign product", func(t *testing.T) {
		_, err := authz.ProductMutate(context.Background(), principal(auth.RoleVendor), foreign, "", dir)
		assert.ErrorIs(t, err, authz.ErrForbidden)
	})

	t.Run("vendor without profile is rejected even for own-looking products", func(t *testing.T) {
		_, err := authz.ProductMutate(context.Background(), principal(auth.RoleVendor), owned, "", fakeDirectory{})
		assert.ErrorIs(t, err, authz.ErrForbidden)
	})

	t.Run("admin with blank vendor id keeps the current owner", func(t *testing.T) {
		got, err := authz.ProductMutate(context.Background(), principal(auth.RoleAdmin), foreign, "", dir)
		require.NoError(t, err)
		assert.Equal(t, otherVendorHex, got)
	})

	t.Run("admin may reassign ownership", func(t *testing.T) {
		got, err := authz.ProductMutate(context.Background(), principal(auth.RoleAdmin), owned, otherVendorHex, dir)
		require.NoError(t, err)
		assert.Equal(t, otherVendorHex, got)
	})
}

func TestVendorUpdate(t *testing.T) {
	own := vendorWithID(ownVendorHex, "user-1")
	foreign := vendorWithID(otherVendorHex, "user-2")

	t.Run("vendor updates own profile, owner pinned", func(t *testing.T) {
		got, err := authz.VendorUpdate(principal(auth.RoleVendor), own, "user-999")
		require.NoError(t, err)
		assert.Equal(t, "user-1", got)
	})

	t.Run("vendor may not update a foreign profile", func(t *testing.T) {
		_, err := authz.VendorUpdate(principal(auth.RoleVendor), foreign, "")
		assert.ErrorIs(t, err, authz.ErrForbidden)
	})

	t.Run("admin with a blank userId keeps the existing owner", func(t *testing.T) {
		got, err := authz.VendorUpdate(principal(auth.RoleAdmin), foreign, "")
		require.NoError(t, err)
		assert.Equal(t, "user-2", got)
	})

	t.Run("admin reassigns the owner when the body names one", func(t *testing.T) {
		got, err := authz.VendorUpdate(principal(auth.RoleAdmin), foreign, "user-9")
		require.NoError(t, err)
		assert.Equal(t, "user-9", got)
	})

	t.Run("customer is rejected", func(t *testing.T) {
		_, err := authz.VendorUpdate(principal(auth.RoleCustomer), own, "")
		assert.ErrorIs(t, err, authz.ErrForbidden)
	})
}
