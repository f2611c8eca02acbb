package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vendora/vendora/app/models"
)

// ProductRepository extends the generic repository with catalogue finders.
type ProductRepository struct {
	*Repository[models.Product]
}

// NewProductRepository builds a ProductRepository over the products collection.
func NewProductRepository(col *mongo.Collection) *ProductRepository {
	return &ProductRepository{Repository: New[models.Product](col)}
}

// ByVendor returns all products recorded under the given vendor id.
func (r *ProductRepository) ByVendor(ctx context.Context, vendorID string) ([]models.Product, error) {
	return r.Find(ctx, bson.M{"vendorId": vendorID})
}

// ByCategory returns all products whose category list contains categoryID.
func (r *ProductRepository) ByCategory(ctx context.Context, categoryID string) ([]models.Product, error) {
	return r.Find(ctx, bson.M{"categories": categoryID})
}

// Search runs a text search over the product text index (name, description).
func (r *ProductRepository) Search(ctx context.Context, term string) ([]models.Product, error) {
	return r.Find(ctx, bson.M{"$text": bson.M{"$search": term}})
}
