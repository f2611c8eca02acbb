package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vendora/vendora/app/models"
)

// CategoryRepo is the slice of the category repository the services use.
type CategoryRepo interface {
	All(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id string) (*models.Category, error)
	Create(ctx context.Context, c *models.Category) (primitive.ObjectID, error)
	Update(ctx context.Context, id string, c *models.Category) error
	Delete(ctx context.Context, id string) error
}

// CategoryService manages the admin-owned product taxonomy.
type CategoryService struct {
	categories CategoryRepo
}

func NewCategoryService(categories CategoryRepo) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.categories.All(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	return s.categories.Get(ctx, id)
}

func (s *CategoryService) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	c.CreatedAt = time.Now().UTC()
	id, err := s.categories.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	c.ID = id
	return c, nil
}

// Update replaces the category. Returns (false, nil) when absent.
func (s *CategoryService) Update(ctx context.Context, id string, c *models.Category) (bool, error) {
	existing, err := s.categories.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	c.ID = existing.ID
	c.CreatedAt = existing.CreatedAt
	if err := s.categories.Update(ctx, id, c); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes the category. Products referencing it keep the stale id;
// membership is validated only at product write time.
func (s *CategoryService) Delete(ctx context.Context, id string) (bool, error) {
	existing, err := s.categories.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}
	return true, s.categories.Delete(ctx, id)
}
