package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vendora/vendora/app/models"
)

// VendorRepo is the slice of the vendor repository VendorService depends on.
type VendorRepo interface {
	All(ctx context.Context) ([]models.Vendor, error)
	Get(ctx context.Context, id string) (*models.Vendor, error)
	Find(ctx context.Context, filter bson.M) ([]models.Vendor, error)
	Create(ctx context.Context, v *models.Vendor) (primitive.ObjectID, error)
	Update(ctx context.Context, id string, v *models.Vendor) error
	Delete(ctx context.Context, id string) error
}

// VendorService manages vendor profiles.
type VendorService struct {
	vendors VendorRepo
}

func NewVendorService(vendors VendorRepo) *VendorService {
	return &VendorService{vendors: vendors}
}

func (s *VendorService) List(ctx context.Context) ([]models.Vendor, error) {
	return s.vendors.All(ctx)
}

// Get returns the vendor or nil when absent.
func (s *VendorService) Get(ctx context.Context, id string) (*models.Vendor, error) {
	return s.vendors.Get(ctx, id)
}

// GetByUserID returns the vendor profile owned by the user account, or
// nil when the user has none. First match wins.
func (s *VendorService) GetByUserID(ctx context.Context, userID string) (*models.Vendor, error) {
	found, err := s.vendors.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

func (s *VendorService) Create(ctx context.Context, v *models.Vendor) (*models.Vendor, error) {
	now := time.Now().UTC()
	v.CreatedAt = now
	v.UpdatedAt = now

	id, err := s.vendors.Create(ctx, v)
	if err != nil {
		return nil, err
	}
	v.ID = id
	return v, nil
}

// Update replaces the vendor document. Returns (false, nil) when no
// vendor exists under id.
func (s *VendorService) Update(ctx context.Context, id string, v *models.Vendor) (bool, error) {
	existing, err := s.vendors.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	v.ID = existing.ID
	v.CreatedAt = existing.CreatedAt
	v.UpdatedAt = time.Now().UTC()
	if err := s.vendors.Update(ctx, id, v); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes the vendor. Products keep their vendorId; there is no
// cascade. Returns (false, nil) when no vendor exists under id.
func (s *VendorService) Delete(ctx context.Context, id string) (bool, error) {
	existing, err := s.vendors.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}
	return true, s.vendors.Delete(ctx, id)
}
