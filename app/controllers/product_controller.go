package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vendora/vendora/app/authz"
	"github.com/vendora/vendora/app/models"
	"github.com/vendora/vendora/app/services"
	"github.com/vendora/vendora/pkg/bind"
	"github.com/vendora/vendora/pkg/logger"
	"github.com/vendora/vendora/pkg/middleware"
	"github.com/vendora/vendora/pkg/response"
	"github.com/vendora/vendora/pkg/storage"
	"github.com/vendora/vendora/pkg/validate"
)

type ProductController struct {
	products *services.ProductService
	vendors  *services.VendorService
	uploader storage.Uploader
}

func NewProductController(products *services.ProductService, vendors *services.VendorService, uploader storage.Uploader) *ProductController {
	return &ProductController{products: products, vendors: vendors, uploader: uploader}
}

type productInput struct {
	VendorID      string            `json:"vendorId"` // honoured for admins only
	Name          string            `json:"name"        validate:"required,min=2,max=200"`
	Description   string            `json:"description" validate:"nullable,max=5000"`
	Price         float64           `json:"price"       validate:"required,gte=0"`
	SalesPrice    float64           `json:"salesPrice"  validate:"nullable,gte=0"`
	StockQuantity int               `json:"stockQuantity" validate:"nullable,gte=0"`
	StockStatus   bool              `json:"stockStatus"`
	Categories    []string          `json:"categories"`
	Attributes    map[string]string `json:"attributes"`
	IsActive      bool              `json:"isActive"`
}

func (in *productInput) apply(p *models.Product) {
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.SalesPrice = in.SalesPrice
	p.StockQuantity = in.StockQuantity
	p.StockStatus = in.StockStatus
	p.Categories = in.Categories
	p.Attributes = in.Attributes
	p.IsActive = in.IsActive
}

func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	products, err := c.products.List(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("list products failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load products")
		return
	}
	response.Success(w, products)
}

func (c *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	product, err := c.products.Get(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		logger.WithCtx(r.Context()).Error("get product failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load product")
		return
	}
	if product == nil {
		response.NotFound(w)
		return
	}
	response.Success(w, product)
}

func (c *ProductController) ByVendor(w http.ResponseWriter, r *http.Request) {
	products, err := c.products.ByVendor(r.Context(), chi.URLParam(r, "vendorId"))
	if err != nil {
		logger.WithCtx(r.Context()).Error("products by vendor failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load products")
		return
	}
	response.Success(w, products)
}

func (c *ProductController) ByCategory(w http.ResponseWriter, r *http.Request) {
	products, err := c.products.ByCategory(r.Context(), chi.URLParam(r, "categoryId"))
	if err != nil {
		logger.WithCtx(r.Context()).Error("products by category failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load products")
		return
	}
	response.Success(w, products)
}

// Search runs a full-text search over the catalog. A blank term is a
// client error, not an empty result.
func (c *ProductController) Search(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("q"))
	if term == "" {
		response.Error(w, http.StatusBadRequest, "Search term is required")
		return
	}

	products, err := c.products.Search(r.Context(), term)
	if err != nil {
		logger.WithCtx(r.Context()).Error("product search failed", "error", err, "term", term)
		response.Error(w, http.StatusInternalServerError, "Could not search products")
		return
	}
	response.Success(w, products)
}

func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	var in productInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	vendorID, ok := c.resolveCreate(w, r, &in)
	if !ok {
		return
	}
	c.persistCreate(w, r, &in, vendorID, nil)
}

// CreateWithImages accepts a multipart body: a "payload" form field with
// the product JSON and any number of "images" files. The ownership
// decision runs before any file touches object storage; every non-empty
// file is then uploaded and its URL stored on the product. Files stored
// before a later failure are deleted again.
func (c *ProductController) CreateWithImages(w http.ResponseWriter, r *http.Request) {
	if !parseUpload(w, r) {
		return
	}

	var in productInput
	if err := bind.MultipartJSON(r, "payload", &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs := validate.Struct(&in); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	vendorID, ok := c.resolveCreate(w, r, &in)
	if !ok {
		return
	}

	var urls []string
	for _, fh := range formFiles(r, "images") {
		if fh.Size == 0 {
			continue
		}
		url, err := uploadFile(r.Context(), c.uploader, fh)
		if err != nil {
			logger.WithCtx(r.Context()).Error("product image upload failed", "error", err)
			discardUploads(r.Context(), c.uploader, urls)
			response.Error(w, http.StatusInternalServerError, "Could not upload image")
			return
		}
		urls = append(urls, url)
	}

	if !c.persistCreate(w, r, &in, vendorID, urls) {
		discardUploads(r.Context(), c.uploader, urls)
	}
}

// resolveCreate runs the ownership branch for product creation. Returns
// the vendorId to persist, or false after writing the error response.
func (c *ProductController) resolveCreate(w http.ResponseWriter, r *http.Request, in *productInput) (string, bool) {
	p, ok := middleware.PrincipalFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w)
		return "", false
	}

	vendorID, err := authz.ProductCreate(r.Context(), p, in.VendorID, c.vendors)
	if errors.Is(err, authz.ErrForbidden) {
		response.Forbidden(w)
		return "", false
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("product authz failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not create product")
		return "", false
	}
	return vendorID, true
}

func (c *ProductController) persistCreate(w http.ResponseWriter, r *http.Request, in *productInput, vendorID string, imageURLs []string) bool {
	product := &models.Product{VendorID: vendorID, ImageURLs: imageURLs}
	in.apply(product)

	created, err := c.products.Create(r.Context(), product)
	if errors.Is(err, services.ErrInvalidCategories) {
		response.Error(w, http.StatusBadRequest, "One or more categories do not exist")
		return false
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("create product failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not create product")
		return false
	}

	logger.WithCtx(r.Context()).Info("product created", "product_id", created.ID.Hex(), "vendor_id", vendorID)
	response.Created(w, created)
	return true
}

func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in productInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	id := chi.URLParam(r, "productId")
	existing, err := c.products.Get(r.Context(), id)
	if err != nil {
		logger.WithCtx(r.Context()).Error("get product failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not update product")
		return
	}
	if existing == nil {
		response.NotFound(w)
		return
	}

	vendorID, err := authz.ProductMutate(r.Context(), p, existing, in.VendorID, c.vendors)
	if errors.Is(err, authz.ErrForbidden) {
		response.Forbidden(w)
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("product authz failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not update product")
		return
	}

	product := &models.Product{VendorID: vendorID, ImageURLs: existing.ImageURLs}
	in.apply(product)

	found, err := c.products.Update(r.Context(), id, product)
	if errors.Is(err, services.ErrInvalidCategories) {
		response.Error(w, http.StatusBadRequest, "One or more categories do not exist")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("update product failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not update product")
		return
	}
	if !found {
		response.NotFound(w)
		return
	}
	response.Success(w, product)
}

func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	id := chi.URLParam(r, "productId")
	existing, err := c.products.Get(r.Context(), id)
	if err != nil {
		logger.WithCtx(r.Context()).Error("get product failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not delete product")
		return
	}
	if existing == nil {
		response.NotFound(w)
		return
	}

	if _, err := authz.ProductMutate(r.Context(), p, existing, "", c.vendors); err != nil {
		if errors.Is(err, authz.ErrForbidden) {
			response.Forbidden(w)
			return
		}
		logger.WithCtx(r.Context()).Error("product authz failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not delete product")
		return
	}

	found, err := c.products.Delete(r.Context(), id)
	if err != nil {
		logger.WithCtx(r.Context()).Error("delete product failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not delete product")
		return
	}
	if !found {
		response.NotFound(w)
		return
	}
	logger.WithCtx(r.Context()).Info("product deleted", "product_id", id)
	response.Message(w, "Product deleted")
}

// AddImages uploads additional images for an existing product. At least
// one file is required; empty files are skipped.
func (c *ProductController) AddImages(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	if !parseUpload(w, r) {
		return
	}

	files := formFiles(r, "images")
	if len(files) == 0 {
		response.Error(w, http.StatusBadRequest, "At least one image file is required")
		return
	}

	id := chi.URLParam(r, "productId")
	existing, err := c.products.Get(r.Context(), id)
	if err != nil {
		logger.WithCtx(r.Context()).Error("get product failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not upload images")
		return
	}
	if existing == nil {
		response.NotFound(w)
		return
	}

	if _, err := authz.ProductMutate(r.Context(), p, existing, "", c.vendors); err != nil {
		if errors.Is(err, authz.ErrForbidden) {
			response.Forbidden(w)
			return
		}
		logger.WithCtx(r.Context()).Error("product authz failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not upload images")
		return
	}

	var urls []string
	for _, fh := range files {
		if fh.Size == 0 {
			continue
		}
		url, err := uploadFile(r.Context(), c.uploader, fh)
		if err != nil {
			logger.WithCtx(r.Context()).Error("product image upload failed", "error", err)
			discardUploads(r.Context(), c.uploader, urls)
			response.Error(w, http.StatusInternalServerError, "Could not upload image")
			return
		}
		urls = append(urls, url)
	}

	updated, err := c.products.AppendImages(r.Context(), id, urls)
	if err != nil {
		logger.WithCtx(r.Context()).Error("append images failed", "error", err)
		discardUploads(r.Context(), c.uploader, urls)
		response.Error(w, http.StatusInternalServerError, "Could not upload images")
		return
	}
	if updated == nil {
		discardUploads(r.Context(), c.uploader, urls)
		response.NotFound(w)
		return
	}
	response.Success(w, updated)
}
