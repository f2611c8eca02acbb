// Package authz decides who may touch which marketplace resource.
//
// The rules it encodes:
//
//   - Admins act on behalf of any vendor.
//   - Vendors act only through their own vendor profile; a vendor account
//     without a profile cannot write products at all.
//   - Ownership fields (vendorId on products, userId on vendors) are never
//     taken from the request body for vendors; the decision functions
//     return the value that must be persisted.
package authz

import (
	"context"
	"errors"

	"github.com/vendora/vendora/app/models"
	"github.com/vendora/vendora/pkg/auth"
	"github.com/vendora/vendora/pkg/middleware"
)

// ErrForbidden means the principal is authenticated but not allowed to
// perform the operation on this resource.
var ErrForbidden = errors.New("forbidden")

// VendorDirectory resolves the vendor profile owned by a user account.
type VendorDirectory interface {
	GetByUserID(ctx context.Context, userID string) (*models.Vendor, error)
}

// ProductCreate decides whether p may create a product and returns the
// vendorId to persist. Vendors always get their own vendor id regardless
// of what the request asked for; admins may create for any vendor.
func ProductCreate(ctx context.Context, p middleware.Principal, requestedVendorID string, dir VendorDirectory) (string, error) {
	switch p.Role {
	case auth.RoleAdmin:
		return requestedVendorID, nil
	case auth.RoleVendor:
		own, err := dir.GetByUserID(ctx, p.UserID)
		if err != nil {
			return "", err
		}
		if own == nil {
			return "", ErrForbidden
		}
		return own.ID.Hex(), nil
	default:
		return "", ErrForbidden
	}
}

// ProductMutate decides whether p may update or delete an existing
// product and returns the vendorId to persist. A vendor must own the
// product. An admin keeps the existing owner when the request leaves
// vendorId blank, and reassigns otherwise.
func ProductMutate(ctx context.Context, p middleware.Principal, existing *models.Product, requestedVendorID string, dir VendorDirectory) (string, error) {
	switch p.Role {
	case auth.RoleAdmin:
		if requestedVendorID == "" {
			return existing.VendorID, nil
		}
		return requestedVendorID, nil
	case auth.RoleVendor:
		own, err := dir.GetByUserID(ctx, p.UserID)
		if err != nil {
			return "", err
		}
		if own == nil {
			return "", ErrForbidden
		}
		if existing.VendorID != own.ID.Hex() {
			return "", ErrForbidden
		}
		return own.ID.Hex(), nil
	default:
		return "", ErrForbidden
	}
}

// VendorUpdate decides whether p may update the vendor profile and
// returns the userId to persist. Vendors may only touch their own
// profile and never change its owner. An admin keeps the existing owner
// when the request leaves userId blank, and reassigns otherwise.
func VendorUpdate(p middleware.Principal, existing *models.Vendor, requestedUserID string) (string, error) {
	switch p.Role {
	case auth.RoleAdmin:
		if requestedUserID == "" {
			return existing.UserID, nil
		}
		return requestedUserID, nil
	case auth.RoleVendor:
		if existing.UserID != p.UserID {
			return "", ErrForbidden
		}
		return existing.UserID, nil
	default:
		return "", ErrForbidden
	}
}
