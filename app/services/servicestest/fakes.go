// Package servicestest provides in-memory fakes for the repository
// interfaces in app/services. They mirror the MongoDB repository
// contract used in production: Get returns (nil, nil) for unknown or
// malformed ids, Find matches the filter fields the services actually
// query, Update replaces whole documents.
package servicestest

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vendora/vendora/app/models"
)

// Users is an in-memory services.UserRepo.
type Users struct {
	Items []models.User
}

func (f *Users) Find(_ context.Context, filter bson.M) ([]models.User, error) {
	email, _ := filter["email"].(string)
	var out []models.User
	for _, u := range f.Items {
		if u.Email == email {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *Users) Create(_ context.Context, u *models.User) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *u
	stored.ID = id
	f.Items = append(f.Items, stored)
	return id, nil
}

// Vendors is an in-memory services.VendorRepo.
type Vendors struct {
	Items []models.Vendor
}

func (f *Vendors) All(_ context.Context) ([]models.Vendor, error) {
	return append([]models.Vendor(nil), f.Items...), nil
}

func (f *Vendors) Get(_ context.Context, id string) (*models.Vendor, error) {
	for i := range f.Items {
		if f.Items[i].ID.Hex() == id {
			v := f.Items[i]
			return &v, nil
		}
	}
	return nil, nil
}

func (f *Vendors) Find(_ context.Context, filter bson.M) ([]models.Vendor, error) {
	userID, _ := filter["userId"].(string)
	var out []models.Vendor
	for _, v := range f.Items {
		if v.UserID == userID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *Vendors) Create(_ context.Context, v *models.Vendor) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *v
	stored.ID = id
	f.Items = append(f.Items, stored)
	return id, nil
}

func (f *Vendors) Update(_ context.Context, id string, v *models.Vendor) error {
	for i := range f.Items {
		if f.Items[i].ID.Hex() == id {
			stored := *v
			stored.ID = f.Items[i].ID
			f.Items[i] = stored
			return nil
		}
	}
	return nil
}

func (f *Vendors) Delete(_ context.Context, id string) error {
	for i := range f.Items {
		if f.Items[i].ID.Hex() == id {
			f.Items = append(f.Items[:i], f.Items[i+1:]...)
			return nil
		}
	}
	return nil
}

// Categories is an in-memory services.CategoryRepo.
type Categories struct {
	Items []models.Category
}

func (f *Categories) All(_ context.Context) ([]models.Category, error) {
	return append([]models.Category(nil), f.Items...), nil
}

func (f *Categories) Get(_ context.Context, id string) (*models.Category, error) {
	for i := range f.Items {
		if f.Items[i].ID.Hex() == id {
			c := f.Items[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (f *Categories) Create(_ context.Context, c *models.Category) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *c
	stored.ID = id
	f.Items = append(f.Items, stored)
	return id, nil
}

func (f *Categories) Update(_ context.Context, id string, c *models.Category) error {
	for i := range f.Items {
		if f.Items[i].ID.Hex() == id {
			stored := *c
			stored.ID = f.Items[i].ID
			f.Items[i] = stored
			return nil
		}
	}
	return nil
}

func (f *Categories) Delete(_ context.Context, id string) error {
	for i := range f.Items {
		if f.Items[i].ID.Hex() == id {
			f.Items = append(f.Items[:i], f.Items[i+1:]...)
			return nil
		}
	}
	return nil
}

// Products is an in-memory services.ProductRepo.
type Products struct {
	Items []models.Product
}

func (f *Products) All(_ context.Context) ([]models.Product, error) {
	return append([]models.Product(nil), f.Items...), nil
}

func (f *Products) Get(_ context.Context, id string) (*models.Product, error) {
	for i := range f.Items {
		if f.Items[i].ID.Hex() == id {
			p := f.Items[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (f *Products) Create(_ context.Context, p *models.Product) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *p
	stored.ID = id
	f.Items = append(f.Items, stored)
	return id, nil
}

func (f *Products) Update(_ context.Context, id string, p *models.Product) error {
	for i := range f.Items {
		if f.Items[i].ID.Hex() == id {
			stored := *p
			stored.ID = f.Items[i].ID
			f.Items[i] = stored
			return nil
		}
	}
	return nil
}

func (f *Products) Delete(_ context.Context, id string) error {
	for i := range f.Items {
		if f.Items[i].ID.Hex() == id {
			f.Items = append(f.Items[:i], f.Items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *Products) ByVendor(_ context.Context, vendorID string) ([]models.Product, error) {
	var out []models.Product
	for _, p := range f.Items {
		if p.VendorID == vendorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *Products) ByCategory(_ context.Context, categoryID string) ([]models.Product, error) {
	var out []models.Product
	for _, p := range f.Items {
		for _, c := range p.Categories {
			if c == categoryID {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

// Search approximates the Mongo text index with a case-insensitive
// substring match over name and description.
func (f *Products) Search(_ context.Context, term string) ([]models.Product, error) {
	needle := strings.ToLower(term)
	var out []models.Product
	for _, p := range f.Items {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Blogs is an in-memory services.BlogRepo.
type Blogs struct {
	Items []models.Blog
}

func (f *Blogs) All(_ context.Context) ([]models.Blog, error) {
	return append([]models.Blog(nil), f.Items...), nil
}

func (f *Blogs) Get(_ context.Context, id string) (*models.Blog, error) {
	for i := range f.Items {
		if f.Items[i].ID.Hex() == id {
			b := f.Items[i]
			return &b, nil
		}
	}
	return nil, nil
}

func (f *Blogs) Create(_ context.Context, b *models.Blog) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *b
	stored.ID = id
	f.Items = append(f.Items, stored)
	return id, nil
}

func (f *Blogs) Update(_ context.Context, id string, b *models.Blog) error {
	for i := range f.Items {
		if f.Items[i].ID.Hex() == id {
			stored := *b
			stored.ID = f.Items[i].ID
			f.Items[i] = stored
			return nil
		}
	}
	return nil
}

func (f *Blogs) Delete(_ context.Context, id string) error {
	for i := range f.Items {
		if f.Items[i].ID.Hex() == id {
			f.Items = append(f.Items[:i], f.Items[i+1:]...)
			return nil
		}
	}
	return nil
}
