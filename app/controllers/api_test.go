package controllers_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vendora/vendora/app/controllers"
	"github.com/vendora/vendora/app/models"
	"github.com/vendora/vendora/app/routes"
	"github.com/vendora/vendora/app/services"
	"github.com/vendora/vendora/app/services/servicestest"
	"github.com/vendora/vendora/pkg/auth"
	"github.com/vendora/vendora/pkg/router"
	"github.com/vendora/vendora/pkg/testkit"
)

// fakeUploader returns deterministic URLs and records stores and
// deletes. Setting failOn makes the upload of that filename error.
type fakeUploader struct {
	uploads []string
	deleted []string
	failOn  string
}

func (f *fakeUploader) Upload(_ context.Context, r io.Reader, filename, _ string) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	if filename == f.failOn {
		return "", errors.New("storage unavailable")
	}
	url := "https://cdn.test/" + filename
	f.uploads = append(f.uploads, url)
	return url, nil
}

func (f *fakeUploader) Delete(_ context.Context, url string) error {
	f.deleted = append(f.deleted, url)
	return nil
}

// env is a fully wired API over in-memory fakes.
type env struct {
	users      *servicestest.Users
	vendors    *servicestest.Vendors
	categories *servicestest.Categories
	products   *servicestest.Products
	blogs      *servicestest.Blogs
	uploader   *fakeUploader
	handler    http.Handler
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{
		users:      &servicestest.Users{},
		vendors:    &servicestest.Vendors{},
		categories: &servicestest.Categories{},
		products:   &servicestest.Products{},
		blogs:      &servicestest.Blogs{},
		uploader:   &fakeUploader{},
	}

	vendorSvc := services.NewVendorService(e.vendors)
	r := router.New()
	routes.RegisterAPI(r, routes.Controllers{
		Auth:       controllers.NewAuthController(services.NewAuthService(e.users)),
		Vendors:    controllers.NewVendorController(vendorSvc, e.uploader),
		Products:   controllers.NewProductController(services.NewProductService(e.products, e.categories), vendorSvc, e.uploader),
		Categories: controllers.NewCategoryController(services.NewCategoryService(e.categories)),
		Blogs:      controllers.NewBlogController(services.NewBlogService(e.blogs), e.uploader),
	})
	e.handler = r.Handler()
	return e
}

// user seeds an account and returns its id and a valid bearer token.
func (e *env) user(t *testing.T, email string, role auth.Role) (string, string) {
	t.Helper()
	id := primitive.NewObjectID()
	e.users.Items = append(e.users.Items, models.User{
		ID: id, Username: "test", Email: email, Role: role,
	})
	token, err := auth.GenerateToken(id.Hex(), email, role.String())
	require.NoError(t, err)
	return id.Hex(), token
}

// vendor seeds a vendor profile owned by userID.
func (e *env) vendor(userID, name string) models.Vendor {
	v := models.Vendor{ID: primitive.NewObjectID(), UserID: userID, BusinessName: name}
	e.vendors.Items = append(e.vendors.Items, v)
	return v
}

// category seeds a taxonomy entry and returns its hex id.
func (e *env) category(name string) string {
	c := models.Category{ID: primitive.NewObjectID(), Name: name}
	e.categories.Items = append(e.categories.Items, c)
	return c.ID.Hex()
}

// product seeds a product under vendorID.
func (e *env) product(vendorID, name string) models.Product {
	p := models.Product{ID: primitive.NewObjectID(), VendorID: vendorID, Name: name, Price: 10}
	e.products.Items = append(e.products.Items, p)
	return p
}

func (e *env) do(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	e := newEnv(t)
	rec := e.do(httptest.NewRequest(http.MethodGet, "/health", nil), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestRegisterLoginFlow(t *testing.T) {
	e := newEnv(t)

	reg := map[string]string{
		"username": "jane", "email": "jane@example.com",
		"password": "secret123", "role": "Vendor",
	}
	rec := e.do(testkit.JSONRequest(t, http.MethodPost, "/api/auth/register", reg), "")
	env := testkit.AssertEnvelope(t, rec, http.StatusCreated)

	var created models.User
	testkit.DecodeData(t, env, &created)
	assert.Equal(t, auth.RoleVendor, created.Role)

	// password hash never leaks
	assert.NotContains(t, rec.Body.String(), "passwordHash")

	// duplicate email
	rec = e.do(testkit.JSONRequest(t, http.MethodPost, "/api/auth/register", reg), "")
	testkit.AssertEnvelope(t, rec, http.StatusConflict)

	// login returns a token that the auth middleware accepts
	rec = e.do(testkit.JSONRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "jane@example.com", "password": "secret123",
	}), "")
	env = testkit.AssertEnvelope(t, rec, http.StatusOK)

	var result struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	testkit.DecodeData(t, env, &result)
	require.NotEmpty(t, result.Token)

	rec = e.do(httptest.NewRequest(http.MethodGet, "/api/vendors/me", nil), result.Token)
	// authenticated but has no vendor profile yet
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// wrong password
	rec = e.do(testkit.JSONRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "jane@example.com", "password": "wrong",
	}), "")
	testkit.AssertEnvelope(t, rec, http.StatusUnauthorized)
}

func TestProductCreateForcesVendorOwnership(t *testing.T) {
	e := newEnv(t)
	userID, token := e.user(t, "v@example.com", auth.RoleVendor)
	own := e.vendor(userID, "Own Shop")
	other := e.vendor("someone-else", "Other Shop")

	rec := e.do(testkit.JSONRequest(t, http.MethodPost, "/api/products", map[string]interface{}{
		"name": "Widget", "price": 9.99, "vendorId": other.ID.Hex(),
	}), token)
	env := testkit.AssertEnvelope(t, rec, http.StatusCreated)

	var created models.Product
	testkit.DecodeData(t, env, &created)
	assert.Equal(t, own.ID.Hex(), created.VendorID)
}

func TestProductCreateWithoutVendorProfile(t *testing.T) {
	e := newEnv(t)
	_, token := e.user(t, "v@example.com", auth.RoleVendor)

	rec := e.do(testkit.JSONRequest(t, http.MethodPost, "/api/products", map[string]interface{}{
		"name": "Widget", "price": 9.99,
	}), token)
	testkit.AssertEnvelope(t, rec, http.StatusForbidden)
}

func TestCustomerCannotWriteProducts(t *testing.T) {
	e := newEnv(t)
	_, token := e.user(t, "c@example.com", auth.RoleCustomer)

	rec := e.do(testkit.JSONRequest(t, http.MethodPost, "/api/products", map[string]interface{}{
		"name": "Widget", "price": 9.99,
	}), token)
	testkit.AssertEnvelope(t, rec, http.StatusForbidden)

	// and no token at all is a 401
	rec = e.do(testkit.JSONRequest(t, http.MethodPost, "/api/products", map[string]interface{}{
		"name": "Widget", "price": 9.99,
	}), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProductUpdateOwnership(t *testing.T) {
	e := newEnv(t)
	userID, token := e.user(t, "v@example.com", auth.RoleVendor)
	own := e.vendor(userID, "Own Shop")
	other := e.vendor("someone-else", "Other Shop")
	foreign := e.product(other.ID.Hex(), "Foreign Widget")

	body := map[string]interface{}{"name": "Hijacked", "price": 1.0}

	rec := e.do(testkit.JSONRequest(t, http.MethodPut, "/api/products/"+foreign.ID.Hex(), body), token)
	testkit.AssertEnvelope(t, rec, http.StatusForbidden)

	// absent products are 404 before any ownership check
	rec = e.do(testkit.JSONRequest(t, http.MethodPut, "/api/products/"+primitive.NewObjectID().Hex(), body), token)
	testkit.AssertEnvelope(t, rec, http.StatusNotFound)

	mine := e.product(own.ID.Hex(), "My Widget")
	rec = e.do(testkit.JSONRequest(t, http.MethodPut, "/api/products/"+mine.ID.Hex(), body), token)
	env := testkit.AssertEnvelope(t, rec, http.StatusOK)

	var updated models.Product
	testkit.DecodeData(t, env, &updated)
	assert.Equal(t, "Hijacked", updated.Name)
	assert.Equal(t, own.ID.Hex(), updated.VendorID)
}

func TestAdminBlankVendorIDKeepsOwner(t *testing.T) {
	e := newEnv(t)
	_, token := e.user(t, "admin@example.com", auth.RoleAdmin)
	shop := e.vendor("someone", "Shop")
	p := e.product(shop.ID.Hex(), "Widget")

	rec := e.do(testkit.JSONRequest(t, http.MethodPut, "/api/products/"+p.ID.Hex(), map[string]interface{}{
		"name": "Widget v2", "price": 5.0,
	}), token)
	env := testkit.AssertEnvelope(t, rec, http.StatusOK)

	var updated models.Product
	testkit.DecodeData(t, env, &updated)
	assert.Equal(t, shop.ID.Hex(), updated.VendorID)
}

func TestProductCreateRejectsUnknownCategories(t *testing.T) {
	e := newEnv(t)
	userID, token := e.user(t, "v@example.com", auth.RoleVendor)
	e.vendor(userID, "Shop")
	known := e.category("Electronics")

	rec := e.do(testkit.JSONRequest(t, http.MethodPost, "/api/products", map[string]interface{}{
		"name": "Widget", "price": 9.99,
		"categories": []string{known, primitive.NewObjectID().Hex()},
	}), token)
	env := testkit.AssertEnvelope(t, rec, http.StatusBadRequest)
	assert.Equal(t, "One or more categories do not exist", env.Message)
}

func TestProductSearch(t *testing.T) {
	e := newEnv(t)
	shop := e.vendor("u", "Shop")
	e.product(shop.ID.Hex(), "Walnut Desk")

	rec := e.do(httptest.NewRequest(http.MethodGet, "/api/products/search", nil), "")
	env := testkit.AssertEnvelope(t, rec, http.StatusBadRequest)
	assert.Equal(t, "Search term is required", env.Message)

	rec = e.do(httptest.NewRequest(http.MethodGet, "/api/products/search?q=walnut", nil), "")
	env = testkit.AssertEnvelope(t, rec, http.StatusOK)

	var hits []models.Product
	testkit.DecodeData(t, env, &hits)
	require.Len(t, hits, 1)
	assert.Equal(t, "Walnut Desk", hits[0].Name)
}

func TestProductAddImages(t *testing.T) {
	e := newEnv(t)
	userID, token := e.user(t, "v@example.com", auth.RoleVendor)
	own := e.vendor(userID, "Shop")
	p := e.product(own.ID.Hex(), "Widget")

	req := testkit.NewMultipart(t).
		File("images", "a.jpg", []byte("img-a")).
		File("images", "empty.jpg", nil). // skipped, not uploaded
		File("images", "b.jpg", []byte("img-b")).
		Request(http.MethodPost, "/api/products/"+p.ID.Hex()+"/images")
	rec := e.do(req, token)
	env := testkit.AssertEnvelope(t, rec, http.StatusOK)

	var updated models.Product
	testkit.DecodeData(t, env, &updated)
	assert.Equal(t, []string{"https://cdn.test/a.jpg", "https://cdn.test/b.jpg"}, updated.ImageURLs)

	// no files at all is a client error
	req = testkit.NewMultipart(t).
		Field("unused", "x").
		Request(http.MethodPost, "/api/products/"+p.ID.Hex()+"/images")
	rec = e.do(req, token)
	env = testkit.AssertEnvelope(t, rec, http.StatusBadRequest)
	assert.Equal(t, "At least one image file is required", env.Message)
}

func TestProductCreateWithImages(t *testing.T) {
	e := newEnv(t)
	userID, token := e.user(t, "v@example.com", auth.RoleVendor)
	own := e.vendor(userID, "Shop")

	req := testkit.NewMultipart(t).
		JSONField("payload", map[string]interface{}{"name": "Widget", "price": 9.99}).
		File("images", "a.jpg", []byte("img-a")).
		File("images", "b.jpg", []byte("img-b")).
		Request(http.MethodPost, "/api/products/with-images")
	rec := e.do(req, token)
	env := testkit.AssertEnvelope(t, rec, http.StatusCreated)

	var created models.Product
	testkit.DecodeData(t, env, &created)
	assert.Equal(t, own.ID.Hex(), created.VendorID)
	assert.Equal(t, []string{"https://cdn.test/a.jpg", "https://cdn.test/b.jpg"}, created.ImageURLs)
}

func TestBlogImageSlots(t *testing.T) {
	e := newEnv(t)
	_, token := e.user(t, "admin@example.com", auth.RoleAdmin)

	t.Run("first file is the cover, the rest are content", func(t *testing.T) {
		req := testkit.NewMultipart(t).
			JSONField("payload", map[string]interface{}{"title": "Hello", "body": "World"}).
			File("images", "cover.jpg", []byte("c")).
			File("images", "inline1.jpg", []byte("i1")).
			File("images", "inline2.jpg", []byte("i2")).
			Request(http.MethodPost, "/api/blogs")
		rec := e.do(req, token)
		env := testkit.AssertEnvelope(t, rec, http.StatusCreated)

		var created models.Blog
		testkit.DecodeData(t, env, &created)
		assert.Equal(t, "https://cdn.test/cover.jpg", created.ImageURL)
		assert.Equal(t, []string{"https://cdn.test/inline1.jpg", "https://cdn.test/inline2.jpg"}, created.ContentImages)
	})

	t.Run("an empty first file still occupies the cover slot", func(t *testing.T) {
		req := testkit.NewMultipart(t).
			JSONField("payload", map[string]interface{}{"title": "Hello", "body": "World"}).
			File("images", "empty.jpg", nil).
			File("images", "inline.jpg", []byte("i")).
			Request(http.MethodPost, "/api/blogs")
		rec := e.do(req, token)
		env := testkit.AssertEnvelope(t, rec, http.StatusCreated)

		var created models.Blog
		testkit.DecodeData(t, env, &created)
		assert.Empty(t, created.ImageURL)
		assert.Equal(t, []string{"https://cdn.test/inline.jpg"}, created.ContentImages)
	})
}

func TestBlogPayloadErrors(t *testing.T) {
	e := newEnv(t)
	_, token := e.user(t, "admin@example.com", auth.RoleAdmin)

	cases := []struct {
		name    string
		build   func() *http.Request
		message string
	}{
		{
			"missing payload",
			func() *http.Request {
				return testkit.NewMultipart(t).
					File("images", "a.jpg", []byte("a")).
					Request(http.MethodPost, "/api/blogs")
			},
			"payload is required",
		},
		{
			"null payload",
			func() *http.Request {
				return testkit.NewMultipart(t).
					Field("payload", "null").
					Request(http.MethodPost, "/api/blogs")
			},
			"payload is invalid",
		},
		{
			"malformed payload",
			func() *http.Request {
				return testkit.NewMultipart(t).
					Field("payload", "{broken").
					Request(http.MethodPost, "/api/blogs")
			},
			"invalid JSON",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := e.do(tc.build(), token)
			env := testkit.AssertEnvelope(t, rec, http.StatusBadRequest)
			assert.Equal(t, tc.message, env.Message)
		})
	}
}

func TestBlogUpdateKeepsImagesWithoutFiles(t *testing.T) {
	e := newEnv(t)
	_, token := e.user(t, "admin@example.com", auth.RoleAdmin)

	existing := models.Blog{
		ID:            primitive.NewObjectID(),
		Title:         "Old",
		Body:          "Old body",
		ImageURL:      "https://cdn.test/old-cover.jpg",
		ContentImages: []string{"https://cdn.test/old-inline.jpg"},
	}
	e.blogs.Items = append(e.blogs.Items, existing)

	req := testkit.NewMultipart(t).
		JSONField("payload", map[string]interface{}{"title": "New", "body": "New body"}).
		Request(http.MethodPut, "/api/blogs/"+existing.ID.Hex())
	rec := e.do(req, token)
	env := testkit.AssertEnvelope(t, rec, http.StatusOK)

	var updated models.Blog
	testkit.DecodeData(t, env, &updated)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, existing.ImageURL, updated.ImageURL)
	assert.Equal(t, existing.ContentImages, updated.ContentImages)

	// a new cover replaces, content images append to the stored list
	req = testkit.NewMultipart(t).
		JSONField("payload", map[string]interface{}{"title": "New", "body": "New body"}).
		File("images", "new-cover.jpg", []byte("c")).
		File("images", "extra.jpg", []byte("e")).
		Request(http.MethodPut, "/api/blogs/"+existing.ID.Hex())
	rec = e.do(req, token)
	env = testkit.AssertEnvelope(t, rec, http.StatusOK)

	testkit.DecodeData(t, env, &updated)
	assert.Equal(t, "https://cdn.test/new-cover.jpg", updated.ImageURL)
	assert.Equal(t, []string{"https://cdn.test/old-inline.jpg", "https://cdn.test/extra.jpg"}, updated.ContentImages)
}

func TestVendorMe(t *testing.T) {
	e := newEnv(t)
	userID, token := e.user(t, "v@example.com", auth.RoleVendor)
	own := e.vendor(userID, "My Shop")

	rec := e.do(httptest.NewRequest(http.MethodGet, "/api/vendors/me", nil), token)
	env := testkit.AssertEnvelope(t, rec, http.StatusOK)

	var got models.Vendor
	testkit.DecodeData(t, env, &got)
	assert.Equal(t, own.ID, got.ID)

	rec = e.do(httptest.NewRequest(http.MethodGet, "/api/vendors/me", nil), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestVendorBannerUpdate(t *testing.T) {
	e := newEnv(t)
	userID, token := e.user(t, "v@example.com", auth.RoleVendor)
	own := e.vendor(userID, "My Shop")
	e.vendors.Items[len(e.vendors.Items)-1].BannerURL = "https://cdn.test/old-banner.jpg"

	payload := map[string]interface{}{"businessName": "My Shop"}

	// without a file the stored banner carries forward
	req := testkit.NewMultipart(t).
		JSONField("payload", payload).
		Request(http.MethodPut, "/api/vendors/"+own.ID.Hex())
	rec := e.do(req, token)
	env := testkit.AssertEnvelope(t, rec, http.StatusOK)

	var updated models.Vendor
	testkit.DecodeData(t, env, &updated)
	assert.Equal(t, "https://cdn.test/old-banner.jpg", updated.BannerURL)
	assert.Equal(t, userID, updated.UserID)

	// a new file wins
	req = testkit.NewMultipart(t).
		JSONField("payload", payload).
		File("banner", "new-banner.jpg", []byte("b")).
		Request(http.MethodPut, "/api/vendors/"+own.ID.Hex())
	rec = e.do(req, token)
	env = testkit.AssertEnvelope(t, rec, http.StatusOK)

	testkit.DecodeData(t, env, &updated)
	assert.Equal(t, "https://cdn.test/new-banner.jpg", updated.BannerURL)
}

func TestVendorUpdateForeignForbidden(t *testing.T) {
	e := newEnv(t)
	_, token := e.user(t, "v@example.com", auth.RoleVendor)
	foreign := e.vendor("someone-else", "Their Shop")

	req := testkit.NewMultipart(t).
		JSONField("payload", map[string]interface{}{"businessName": "Taken Over"}).
		Request(http.MethodPut, "/api/vendors/"+foreign.ID.Hex())
	rec := e.do(req, token)
	testkit.AssertEnvelope(t, rec, http.StatusForbidden)
}

func TestCategoryWritesAreAdminOnly(t *testing.T) {
	e := newEnv(t)
	_, customerToken := e.user(t, "c@example.com", auth.RoleCustomer)
	_, adminToken := e.user(t, "a@example.com", auth.RoleAdmin)

	body := map[string]string{"name": "Electronics"}

	rec := e.do(testkit.JSONRequest(t, http.MethodPost, "/api/categories", body), customerToken)
	testkit.AssertEnvelope(t, rec, http.StatusForbidden)

	rec = e.do(testkit.JSONRequest(t, http.MethodPost, "/api/categories", body), adminToken)
	env := testkit.AssertEnvelope(t, rec, http.StatusCreated)

	var created models.Category
	testkit.DecodeData(t, env, &created)
	require.False(t, created.ID.IsZero())

	// public read
	rec = e.do(httptest.NewRequest(http.MethodGet, "/api/categories", nil), "")
	env = testkit.AssertEnvelope(t, rec, http.StatusOK)
	var list []models.Category
	testkit.DecodeData(t, env, &list)
	assert.Len(t, list, 1)

	// delete, then 404 on repeat
	rec = e.do(httptest.NewRequest(http.MethodDelete, "/api/categories/"+created.ID.Hex(), nil), adminToken)
	testkit.AssertEnvelope(t, rec, http.StatusOK)
	rec = e.do(httptest.NewRequest(http.MethodDelete, "/api/categories/"+created.ID.Hex(), nil), adminToken)
	testkit.AssertEnvelope(t, rec, http.StatusNotFound)
}

func TestValidationErrorsCarryFieldMap(t *testing.T) {
	e := newEnv(t)

	rec := e.do(testkit.JSONRequest(t, http.MethodPost, "/api/auth/register", map[string]string{
		"email": "not-an-email",
	}), "")
	env := testkit.AssertEnvelope(t, rec, http.StatusUnprocessableEntity)
	assert.Contains(t, env.Errors, "username")
	assert.Contains(t, env.Errors, "email")
	assert.Contains(t, env.Errors, "password")
}

func TestVendorCreateIsAdminOnly(t *testing.T) {
	e := newEnv(t)
	_, vendorToken := e.user(t, "v@example.com", auth.RoleVendor)
	adminID, adminToken := e.user(t, "a@example.com", auth.RoleAdmin)

	body := map[string]interface{}{"businessName": "Provisioned Shop", "userId": adminID}

	rec := e.do(testkit.JSONRequest(t, http.MethodPost, "/api/vendors", body), vendorToken)
	testkit.AssertEnvelope(t, rec, http.StatusForbidden)
	assert.Empty(t, e.vendors.Items)

	rec = e.do(testkit.JSONRequest(t, http.MethodPost, "/api/vendors", body), adminToken)
	env := testkit.AssertEnvelope(t, rec, http.StatusCreated)

	var created models.Vendor
	testkit.DecodeData(t, env, &created)
	assert.Equal(t, adminID, created.UserID)
	assert.Equal(t, "Provisioned Shop", created.BusinessName)
}

func TestVendorReadsAreAdminOnly(t *testing.T) {
	e := newEnv(t)
	userID, vendorToken := e.user(t, "v@example.com", auth.RoleVendor)
	_, adminToken := e.user(t, "a@example.com", auth.RoleAdmin)
	own := e.vendor(userID, "My Shop")

	rec := e.do(httptest.NewRequest(http.MethodGet, "/api/vendors", nil), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = e.do(httptest.NewRequest(http.MethodGet, "/api/vendors", nil), vendorToken)
	testkit.AssertEnvelope(t, rec, http.StatusForbidden)

	rec = e.do(httptest.NewRequest(http.MethodGet, "/api/vendors/"+own.ID.Hex(), nil), vendorToken)
	testkit.AssertEnvelope(t, rec, http.StatusForbidden)

	rec = e.do(httptest.NewRequest(http.MethodGet, "/api/vendors", nil), adminToken)
	env := testkit.AssertEnvelope(t, rec, http.StatusOK)
	var list []models.Vendor
	testkit.DecodeData(t, env, &list)
	assert.Len(t, list, 1)

	rec = e.do(httptest.NewRequest(http.MethodGet, "/api/vendors/"+own.ID.Hex(), nil), adminToken)
	testkit.AssertEnvelope(t, rec, http.StatusOK)
}

func TestAdminReassignsVendorOwner(t *testing.T) {
	e := newEnv(t)
	_, adminToken := e.user(t, "a@example.com", auth.RoleAdmin)
	shop := e.vendor("old-owner", "Shop")

	// naming a userId hands the profile to that user
	req := testkit.NewMultipart(t).
		JSONField("payload", map[string]interface{}{"businessName": "Shop", "userId": "new-owner"}).
		Request(http.MethodPut, "/api/vendors/"+shop.ID.Hex())
	rec := e.do(req, adminToken)
	env := testkit.AssertEnvelope(t, rec, http.StatusOK)

	var updated models.Vendor
	testkit.DecodeData(t, env, &updated)
	assert.Equal(t, "new-owner", updated.UserID)

	// a blank userId carries the stored owner forward
	req = testkit.NewMultipart(t).
		JSONField("payload", map[string]interface{}{"businessName": "Shop"}).
		Request(http.MethodPut, "/api/vendors/"+shop.ID.Hex())
	rec = e.do(req, adminToken)
	env = testkit.AssertEnvelope(t, rec, http.StatusOK)

	testkit.DecodeData(t, env, &updated)
	assert.Equal(t, "new-owner", updated.UserID)
}

func TestCreateWithImagesChecksOwnershipBeforeUpload(t *testing.T) {
	e := newEnv(t)
	_, token := e.user(t, "v@example.com", auth.RoleVendor) // no vendor profile

	req := testkit.NewMultipart(t).
		JSONField("payload", map[string]interface{}{"name": "Widget", "price": 9.99}).
		File("images", "a.jpg", []byte("img-a")).
		Request(http.MethodPost, "/api/products/with-images")
	rec := e.do(req, token)
	testkit.AssertEnvelope(t, rec, http.StatusForbidden)

	// nothing reached object storage
	assert.Empty(t, e.uploader.uploads)
}

func TestAddImagesForeignVendorForbidden(t *testing.T) {
	e := newEnv(t)
	userID, token := e.user(t, "v@example.com", auth.RoleVendor)
	e.vendor(userID, "Own Shop")
	other := e.vendor("someone-else", "Other Shop")
	foreign := e.product(other.ID.Hex(), "Foreign Widget")

	req := testkit.NewMultipart(t).
		File("images", "a.jpg", []byte("img-a")).
		Request(http.MethodPost, "/api/products/"+foreign.ID.Hex()+"/images")
	rec := e.do(req, token)
	testkit.AssertEnvelope(t, rec, http.StatusForbidden)
	assert.Empty(t, e.uploader.uploads)
}

func TestCreateWithImagesCleansUpOnFailure(t *testing.T) {
	e := newEnv(t)
	userID, token := e.user(t, "v@example.com", auth.RoleVendor)
	e.vendor(userID, "Shop")

	t.Run("upload failure deletes earlier files", func(t *testing.T) {
		e.uploader.failOn = "b.jpg"
		defer func() { e.uploader.failOn = "" }()

		req := testkit.NewMultipart(t).
			JSONField("payload", map[string]interface{}{"name": "Widget", "price": 9.99}).
			File("images", "a.jpg", []byte("img-a")).
			File("images", "b.jpg", []byte("img-b")).
			Request(http.MethodPost, "/api/products/with-images")
		rec := e.do(req, token)
		testkit.AssertEnvelope(t, rec, http.StatusInternalServerError)
		assert.Equal(t, []string{"https://cdn.test/a.jpg"}, e.uploader.deleted)
		assert.Empty(t, e.products.Items)
	})

	t.Run("rejected product deletes all files", func(t *testing.T) {
		e.uploader.deleted = nil

		req := testkit.NewMultipart(t).
			JSONField("payload", map[string]interface{}{
				"name": "Widget", "price": 9.99,
				"categories": []string{primitive.NewObjectID().Hex()},
			}).
			File("images", "c.jpg", []byte("img-c")).
			Request(http.MethodPost, "/api/products/with-images")
		rec := e.do(req, token)
		testkit.AssertEnvelope(t, rec, http.StatusBadRequest)
		assert.Equal(t, []string{"https://cdn.test/c.jpg"}, e.uploader.deleted)
		assert.Empty(t, e.products.Items)
	})
}

func TestRouteListHasNoUnnamedRoutes(t *testing.T) {
	r := router.New()
	routes.RegisterAPI(r, routes.Controllers{
		Auth:       &controllers.AuthController{},
		Vendors:    &controllers.VendorController{},
		Products:   &controllers.ProductController{},
		Categories: &controllers.CategoryController{},
		Blogs:      &controllers.BlogController{},
	})

	infos := r.Routes()
	require.NotEmpty(t, infos)
	seen := map[string]bool{}
	for _, ri := range infos {
		assert.NotEmpty(t, ri.Name)
		assert.False(t, seen[ri.Name], "duplicate route name %s", ri.Name)
		seen[ri.Name] = true
	}

	data, err := json.Marshal(infos)
	require.NoError(t, err)
	assert.Contains(t, string(data), "/api/products/search")
}
