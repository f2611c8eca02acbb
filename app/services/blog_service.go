package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vendora/vendora/app/models"
)

// BlogRepo is the slice of the blog repository BlogService depends on.
type BlogRepo interface {
	All(ctx context.Context) ([]models.Blog, error)
	Get(ctx context.Context, id string) (*models.Blog, error)
	Create(ctx context.Context, b *models.Blog) (primitive.ObjectID, error)
	Update(ctx context.Context, id string, b *models.Blog) error
	Delete(ctx context.Context, id string) error
}

// BlogService manages platform-authored content.
type BlogService struct {
	blogs BlogRepo
}

func NewBlogService(blogs BlogRepo) *BlogService {
	return &BlogService{blogs: blogs}
}

func (s *BlogService) List(ctx context.Context) ([]models.Blog, error) {
	return s.blogs.All(ctx)
}

func (s *BlogService) Get(ctx context.Context, id string) (*models.Blog, error) {
	return s.blogs.Get(ctx, id)
}

func (s *BlogService) Create(ctx context.Context, b *models.Blog) (*models.Blog, error) {
	b.CreatedAt = time.Now().UTC()
	b.UpdatedAt = nil

	id, err := s.blogs.Create(ctx, b)
	if err != nil {
		return nil, err
	}
	b.ID = id
	return b, nil
}

// Update replaces the blog document. Returns (false, nil) when absent.
// The controller has already merged the image lists into b.
func (s *BlogService) Update(ctx context.Context, id string, b *models.Blog) (bool, error) {
	existing, err := s.blogs.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	now := time.Now().UTC()
	b.ID = existing.ID
	b.CreatedAt = existing.CreatedAt
	b.UpdatedAt = &now
	if err := s.blogs.Update(ctx, id, b); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes the blog post. Returns (false, nil) when absent.
func (s *BlogService) Delete(ctx context.Context, id string) (bool, error) {
	existing, err := s.blogs.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}
	return true, s.blogs.Delete(ctx, id)
}
