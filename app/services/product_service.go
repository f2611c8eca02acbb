package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vendora/vendora/app/models"
	"github.com/vendora/vendora/pkg/collection"
)

// ErrInvalidCategories means at least one referenced category id does not
// exist. The write is rejected as a whole.
var ErrInvalidCategories = errors.New("one or more categories do not exist")

// ProductRepo is the slice of the product repository ProductService uses.
type ProductRepo interface {
	All(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) (primitive.ObjectID, error)
	Update(ctx context.Context, id string, p *models.Product) error
	Delete(ctx context.Context, id string) error
	ByVendor(ctx context.Context, vendorID string) ([]models.Product, error)
	ByCategory(ctx context.Context, categoryID string) ([]models.Product, error)
	Search(ctx context.Context, term string) ([]models.Product, error)
}

// ProductService manages the catalog.
type ProductService struct {
	products   ProductRepo
	categories CategoryRepo
}

func NewProductService(products ProductRepo, categories CategoryRepo) *ProductService {
	return &ProductService{products: products, categories: categories}
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return s.products.All(ctx)
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.products.Get(ctx, id)
}

func (s *ProductService) ByVendor(ctx context.Context, vendorID string) ([]models.Product, error) {
	return s.products.ByVendor(ctx, vendorID)
}

func (s *ProductService) ByCategory(ctx context.Context, categoryID string) ([]models.Product, error) {
	return s.products.ByCategory(ctx, categoryID)
}

// Search runs a text search over product names and descriptions.
func (s *ProductService) Search(ctx context.Context, term string) ([]models.Product, error) {
	return s.products.Search(ctx, term)
}

// ValidateCategories checks that every referenced category exists.
// All-or-nothing: a single unknown id fails the whole list.
func (s *ProductService) ValidateCategories(ctx context.Context, ids []string) error {
	for _, id := range collection.Unique(ids) {
		cat, err := s.categories.Get(ctx, id)
		if err != nil {
			return err
		}
		if cat == nil {
			return ErrInvalidCategories
		}
	}
	return nil
}

func (s *ProductService) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	if err := s.ValidateCategories(ctx, p.Categories); err != nil {
		return nil, err
	}

	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = nil

	id, err := s.products.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	p.ID = id
	return p, nil
}

// Update replaces the product document. Returns (false, nil) when absent.
// The caller has already settled ownership and the vendorId to persist.
func (s *ProductService) Update(ctx context.Context, id string, p *models.Product) (bool, error) {
	existing, err := s.products.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	if err := s.ValidateCategories(ctx, p.Categories); err != nil {
		return false, err
	}

	now := time.Now().UTC()
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = &now
	if err := s.products.Update(ctx, id, p); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes the product. Returns (false, nil) when absent.
func (s *ProductService) Delete(ctx context.Context, id string) (bool, error) {
	existing, err := s.products.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}
	return true, s.products.Delete(ctx, id)
}

// AppendImages adds uploaded image URLs to the product in one write.
// Returns (false, nil) when the product is absent.
func (s *ProductService) AppendImages(ctx context.Context, id string, urls []string) (*models.Product, error) {
	existing, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	now := time.Now().UTC()
	existing.ImageURLs = append(existing.ImageURLs, urls...)
	existing.UpdatedAt = &now
	if err := s.products.Update(ctx, id, existing); err != nil {
		return nil, err
	}
	return existing, nil
}
