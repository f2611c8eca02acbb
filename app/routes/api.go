// Package routes wires the HTTP surface: every endpoint, its name, and
// the middleware protecting it.
package routes

import (
	"github.com/vendora/vendora/app/controllers"
	"github.com/vendora/vendora/pkg/auth"
	"github.com/vendora/vendora/pkg/metrics"
	"github.com/vendora/vendora/pkg/middleware"
	"github.com/vendora/vendora/pkg/rbac"
	"github.com/vendora/vendora/pkg/router"
)

// Controllers bundles the constructed controllers for registration.
type Controllers struct {
	Auth       *controllers.AuthController
	Vendors    *controllers.VendorController
	Products   *controllers.ProductController
	Categories *controllers.CategoryController
	Blogs      *controllers.BlogController
}

// RegisterAPI mounts the whole API onto r.
func RegisterAPI(r *router.Router, c Controllers) {
	r.Get("/health", "health", controllers.Health)
	r.Get("/metrics", "metrics", metrics.Handler())

	api := r.Group("/api")

	// Auth
	api.Post("/auth/register", "auth.register", c.Auth.Register)
	api.Post("/auth/login", "auth.login", c.Auth.Login)

	// Vendors: admin-managed; /me lets a vendor read its own profile.
	adminOnly := api.Group("", middleware.Auth, rbac.HasRole(auth.RoleAdmin))

	api.Get("/vendors/me", "vendors.me", c.Vendors.Me, middleware.Auth)
	adminOnly.Get("/vendors", "vendors.list", c.Vendors.List)
	adminOnly.Get("/vendors/{vendorId}", "vendors.get", c.Vendors.Get)
	adminOnly.Post("/vendors", "vendors.create", c.Vendors.Create)
	adminOnly.Delete("/vendors/{vendorId}", "vendors.delete", c.Vendors.Delete)

	vendorWrites := api.Group("", middleware.Auth, rbac.HasRole(auth.RoleVendor, auth.RoleAdmin))
	vendorWrites.Put("/vendors/{vendorId}", "vendors.update", c.Vendors.Update)

	// Products: catalog reads are public.
	api.Get("/products", "products.list", c.Products.List)
	api.Get("/products/search", "products.search", c.Products.Search)
	api.Get("/products/vendor/{vendorId}", "products.by_vendor", c.Products.ByVendor)
	api.Get("/products/category/{categoryId}", "products.by_category", c.Products.ByCategory)
	api.Get("/products/{productId}", "products.get", c.Products.Get)

	productWrites := api.Group("", middleware.Auth, rbac.HasRole(auth.RoleVendor, auth.RoleAdmin))
	productWrites.Post("/products", "products.create", c.Products.Create)
	productWrites.Post("/products/with-images", "products.create_with_images", c.Products.CreateWithImages)
	productWrites.Post("/products/{productId}/images", "products.add_images", c.Products.AddImages)
	productWrites.Put("/products/{productId}", "products.update", c.Products.Update)
	productWrites.Delete("/products/{productId}", "products.delete", c.Products.Delete)

	// Categories: admin-owned taxonomy.
	api.Get("/categories", "categories.list", c.Categories.List)
	api.Get("/categories/{categoryId}", "categories.get", c.Categories.Get)
	adminOnly.Post("/categories", "categories.create", c.Categories.Create)
	adminOnly.Put("/categories/{categoryId}", "categories.update", c.Categories.Update)
	adminOnly.Delete("/categories/{categoryId}", "categories.delete", c.Categories.Delete)

	// Blogs: platform content, admin writes.
	api.Get("/blogs", "blogs.list", c.Blogs.List)
	api.Get("/blogs/{blogId}", "blogs.get", c.Blogs.Get)
	adminOnly.Post("/blogs", "blogs.create", c.Blogs.Create)
	adminOnly.Put("/blogs/{blogId}", "blogs.update", c.Blogs.Update)
	adminOnly.Delete("/blogs/{blogId}", "blogs.delete", c.Blogs.Delete)
}
