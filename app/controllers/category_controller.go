package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vendora/vendora/app/models"
	"github.com/vendora/vendora/app/services"
	"github.com/vendora/vendora/pkg/bind"
	"github.com/vendora/vendora/pkg/logger"
	"github.com/vendora/vendora/pkg/response"
)

type CategoryController struct {
	categories *services.CategoryService
}

func NewCategoryController(categories *services.CategoryService) *CategoryController {
	return &CategoryController{categories: categories}
}

type categoryInput struct {
	Name        string `json:"name"        validate:"required,min=2,max=100"`
	Slug        string `json:"slug"        validate:"nullable,max=100"`
	Description string `json:"description" validate:"nullable,max=1000"`
}

func (c *CategoryController) List(w http.ResponseWriter, r *http.Request) {
	categories, err := c.categories.List(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("list categories failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load categories")
		return
	}
	response.Success(w, categories)
}

func (c *CategoryController) Get(w http.ResponseWriter, r *http.Request) {
	category, err := c.categories.Get(r.Context(), chi.URLParam(r, "categoryId"))
	if err != nil {
		logger.WithCtx(r.Context()).Error("get category failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load category")
		return
	}
	if category == nil {
		response.NotFound(w)
		return
	}
	response.Success(w, category)
}

func (c *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	var in categoryInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	created, err := c.categories.Create(r.Context(), &models.Category{
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
	})
	if err != nil {
		logger.WithCtx(r.Context()).Error("create category failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not create category")
		return
	}

	logger.WithCtx(r.Context()).Info("category created", "category_id", created.ID.Hex())
	response.Created(w, created)
}

func (c *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	var in categoryInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	id := chi.URLParam(r, "categoryId")
	category := &models.Category{
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
	}
	found, err := c.categories.Update(r.Context(), id, category)
	if err != nil {
		logger.WithCtx(r.Context()).Error("update category failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not update category")
		return
	}
	if !found {
		response.NotFound(w)
		return
	}
	response.Success(w, category)
}

func (c *CategoryController) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "categoryId")
	found, err := c.categories.Delete(r.Context(), id)
	if err != nil {
		logger.WithCtx(r.Context()).Error("delete category failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not delete category")
		return
	}
	if !found {
		response.NotFound(w)
		return
	}
	logger.WithCtx(r.Context()).Info("category deleted", "category_id", id)
	response.Message(w, "Category deleted")
}
