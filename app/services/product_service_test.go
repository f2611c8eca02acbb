package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vendora/vendora/app/models"
	"github.com/vendora/vendora/app/services"
	"github.com/vendora/vendora/app/services/servicestest"
)

func seedCategory(cats *servicestest.Categories, name string) string {
	id := primitive.NewObjectID()
	cats.Items = append(cats.Items, models.Category{ID: id, Name: name})
	return id.Hex()
}

func TestProductCreateValidatesCategories(t *testing.T) {
	cats := &servicestest.Categories{}
	electronics := seedCategory(cats, "Electronics")
	svc := services.NewProductService(&servicestest.Products{}, cats)
	ctx := context.Background()

	t.Run("known categories pass", func(t *testing.T) {
		p, err := svc.Create(ctx, &models.Product{
			Name: "Widget", VendorID: "v1",
			Categories: []string{electronics, electronics}, // duplicates are fine
		})
		require.NoError(t, err)
		assert.False(t, p.ID.IsZero())
		assert.False(t, p.CreatedAt.IsZero())
		assert.Nil(t, p.UpdatedAt)
	})

	t.Run("one unknown id fails the whole write", func(t *testing.T) {
		_, err := svc.Create(ctx, &models.Product{
			Name: "Widget", VendorID: "v1",
			Categories: []string{electronics, primitive.NewObjectID().Hex()},
		})
		assert.ErrorIs(t, err, services.ErrInvalidCategories)
	})

	t.Run("malformed id fails like an unknown one", func(t *testing.T) {
		_, err := svc.Create(ctx, &models.Product{
			Name: "Widget", VendorID: "v1",
			Categories: []string{"not-a-hex-id"},
		})
		assert.ErrorIs(t, err, services.ErrInvalidCategories)
	})
}

func TestProductUpdateStampsAndPreserves(t *testing.T) {
	products := &servicestest.Products{}
	svc := services.NewProductService(products, &servicestest.Categories{})
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.Product{Name: "Widget", VendorID: "v1"})
	require.NoError(t, err)

	found, err := svc.Update(ctx, created.ID.Hex(), &models.Product{Name: "Widget v2", VendorID: "v1"})
	require.NoError(t, err)
	require.True(t, found)

	stored, err := svc.Get(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Widget v2", stored.Name)
	assert.Equal(t, created.CreatedAt, stored.CreatedAt)
	require.NotNil(t, stored.UpdatedAt)
}

func TestProductUpdateAbsent(t *testing.T) {
	svc := services.NewProductService(&servicestest.Products{}, &servicestest.Categories{})

	found, err := svc.Update(context.Background(), primitive.NewObjectID().Hex(), &models.Product{Name: "ghost"})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestProductDelete(t *testing.T) {
	products := &servicestest.Products{}
	svc := services.NewProductService(products, &servicestest.Categories{})
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.Product{Name: "Widget", VendorID: "v1"})
	require.NoError(t, err)

	found, err := svc.Delete(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.True(t, found)

	found, err = svc.Delete(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAppendImages(t *testing.T) {
	products := &servicestest.Products{}
	svc := services.NewProductService(products, &servicestest.Categories{})
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.Product{
		Name: "Widget", VendorID: "v1", ImageURLs: []string{"https://cdn/a.jpg"},
	})
	require.NoError(t, err)

	updated, err := svc.AppendImages(ctx, created.ID.Hex(), []string{"https://cdn/b.jpg", "https://cdn/c.jpg"})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, []string{"https://cdn/a.jpg", "https://cdn/b.jpg", "https://cdn/c.jpg"}, updated.ImageURLs)

	missing, err := svc.AppendImages(ctx, primitive.NewObjectID().Hex(), []string{"x"})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSearchAndFinders(t *testing.T) {
	products := &servicestest.Products{}
	svc := services.NewProductService(products, &servicestest.Categories{})
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.Product{Name: "Walnut Desk", VendorID: "v1", Categories: []string{}})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &models.Product{Name: "Oak Chair", VendorID: "v2"})
	require.NoError(t, err)

	byVendor, err := svc.ByVendor(ctx, "v1")
	require.NoError(t, err)
	require.Len(t, byVendor, 1)
	assert.Equal(t, "Walnut Desk", byVendor[0].Name)

	hits, err := svc.Search(ctx, "walnut")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Walnut Desk", hits[0].Name)
}
