package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vendora/vendora/app/models"
	"github.com/vendora/vendora/app/services"
	"github.com/vendora/vendora/pkg/bind"
	"github.com/vendora/vendora/pkg/logger"
	"github.com/vendora/vendora/pkg/response"
	"github.com/vendora/vendora/pkg/storage"
	"github.com/vendora/vendora/pkg/validate"
)

type BlogController struct {
	blogs    *services.BlogService
	uploader storage.Uploader
}

func NewBlogController(blogs *services.BlogService, uploader storage.Uploader) *BlogController {
	return &BlogController{blogs: blogs, uploader: uploader}
}

type blogInput struct {
	Title     string `json:"title" validate:"required,min=2,max=300"`
	Body      string `json:"body"  validate:"required"`
	Published bool   `json:"published"`
}

func (c *BlogController) List(w http.ResponseWriter, r *http.Request) {
	blogs, err := c.blogs.List(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("list blogs failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load blogs")
		return
	}
	response.Success(w, blogs)
}

func (c *BlogController) Get(w http.ResponseWriter, r *http.Request) {
	blog, err := c.blogs.Get(r.Context(), chi.URLParam(r, "blogId"))
	if err != nil {
		logger.WithCtx(r.Context()).Error("get blog failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load blog")
		return
	}
	if blog == nil {
		response.NotFound(w)
		return
	}
	response.Success(w, blog)
}

// Create accepts a multipart body: a "payload" form field with the blog
// JSON and any number of "images" files. File position decides the role:
// the first slot is the cover image, every later slot is a content image.
// An empty file is not uploaded but still occupies its slot, so an empty
// first file means the post gets no cover even when content images follow.
func (c *BlogController) Create(w http.ResponseWriter, r *http.Request) {
	if !parseUpload(w, r) {
		return
	}

	var in blogInput
	if err := bind.MultipartJSON(r, "payload", &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs := validate.Struct(&in); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	blog := &models.Blog{
		Title:     in.Title,
		Body:      in.Body,
		Published: in.Published,
	}

	for i, fh := range formFiles(r, "images") {
		if fh.Size == 0 {
			continue
		}
		url, err := uploadFile(r.Context(), c.uploader, fh)
		if err != nil {
			logger.WithCtx(r.Context()).Error("blog image upload failed", "error", err)
			response.Error(w, http.StatusInternalServerError, "Could not upload image")
			return
		}
		if i == 0 {
			blog.ImageURL = url
		} else {
			blog.ContentImages = append(blog.ContentImages, url)
		}
	}

	created, err := c.blogs.Create(r.Context(), blog)
	if err != nil {
		logger.WithCtx(r.Context()).Error("create blog failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not create blog")
		return
	}

	logger.WithCtx(r.Context()).Info("blog created", "blog_id", created.ID.Hex())
	response.Created(w, created)
}

// Update replaces the blog post. Image handling starts from the stored
// post: a file in the first slot replaces the cover, files in later slots
// are appended to the existing content images. A request without files
// keeps all stored images.
func (c *BlogController) Update(w http.ResponseWriter, r *http.Request) {
	if !parseUpload(w, r) {
		return
	}

	var in blogInput
	if err := bind.MultipartJSON(r, "payload", &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs := validate.Struct(&in); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	id := chi.URLParam(r, "blogId")
	existing, err := c.blogs.Get(r.Context(), id)
	if err != nil {
		logger.WithCtx(r.Context()).Error("get blog failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not update blog")
		return
	}
	if existing == nil {
		response.NotFound(w)
		return
	}

	blog := &models.Blog{
		Title:         in.Title,
		Body:          in.Body,
		Published:     in.Published,
		ImageURL:      existing.ImageURL,
		ContentImages: existing.ContentImages,
	}

	for i, fh := range formFiles(r, "images") {
		if fh.Size == 0 {
			continue
		}
		url, err := uploadFile(r.Context(), c.uploader, fh)
		if err != nil {
			logger.WithCtx(r.Context()).Error("blog image upload failed", "error", err)
			response.Error(w, http.StatusInternalServerError, "Could not upload image")
			return
		}
		if i == 0 {
			blog.ImageURL = url
		} else {
			blog.ContentImages = append(blog.ContentImages, url)
		}
	}

	found, err := c.blogs.Update(r.Context(), id, blog)
	if err != nil {
		logger.WithCtx(r.Context()).Error("update blog failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not update blog")
		return
	}
	if !found {
		response.NotFound(w)
		return
	}
	response.Success(w, blog)
}

func (c *BlogController) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "blogId")
	found, err := c.blogs.Delete(r.Context(), id)
	if err != nil {
		logger.WithCtx(r.Context()).Error("delete blog failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not delete blog")
		return
	}
	if !found {
		response.NotFound(w)
		return
	}
	logger.WithCtx(r.Context()).Info("blog deleted", "blog_id", id)
	response.Message(w, "Blog deleted")
}
