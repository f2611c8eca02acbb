package controllers

import (
	"errors"
	"net/http"

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

type VendorController struct {
	vendors  *services.VendorService
	uploader storage.Uploader
}

func NewVendorController(vendors *services.VendorService, uploader storage.Uploader) *VendorController {
	return &VendorController{vendors: vendors, uploader: uploader}
}

type vendorInput struct {
	UserID         string   `json:"userId"` // honoured for admins only
	BusinessName   string   `json:"businessName" validate:"required,min=2,max=100"`
	Description    string   `json:"description"  validate:"nullable,max=2000"`
	Notice         string   `json:"notice"       validate:"nullable,max=500"`
	Phone          string   `json:"phone"        validate:"nullable,max=30"`
	Status         string   `json:"status"       validate:"nullable,max=50"`
	Email          string   `json:"email"        validate:"nullable,email"`
	Location       string   `json:"location"     validate:"nullable,max=200"`
	CommissionRate float64  `json:"commissionRate" validate:"nullable,gte=0"`
	IsApproved     bool     `json:"isApproved"`
	Rating         *float64 `json:"rating"`
}

func (in *vendorInput) apply(v *models.Vendor) {
	v.BusinessName = in.BusinessName
	v.Description = in.Description
	v.Notice = in.Notice
	v.Phone = in.Phone
	v.Status = in.Status
	v.Email = in.Email
	v.Location = in.Location
	v.CommissionRate = in.CommissionRate
	v.IsApproved = in.IsApproved
	v.Rating = in.Rating
}

func (c *VendorController) List(w http.ResponseWriter, r *http.Request) {
	vendors, err := c.vendors.List(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("list vendors failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load vendors")
		return
	}
	response.Success(w, vendors)
}

func (c *VendorController) Get(w http.ResponseWriter, r *http.Request) {
	vendor, err := c.vendors.Get(r.Context(), chi.URLParam(r, "vendorId"))
	if err != nil {
		logger.WithCtx(r.Context()).Error("get vendor failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load vendor")
		return
	}
	if vendor == nil {
		response.NotFound(w)
		return
	}
	response.Success(w, vendor)
}

// Me returns the vendor profile owned by the authenticated user.
func (c *VendorController) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	vendor, err := c.vendors.GetByUserID(r.Context(), p.UserID)
	if err != nil {
		logger.WithCtx(r.Context()).Error("get own vendor failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not load vendor")
		return
	}
	if vendor == nil {
		response.NotFound(w)
		return
	}
	response.Success(w, vendor)
}

// Create provisions a vendor profile. Admin only; the owning userId
// comes from the body.
func (c *VendorController) Create(w http.ResponseWriter, r *http.Request) {
	var in vendorInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	vendor := &models.Vendor{UserID: in.UserID}
	in.apply(vendor)

	created, err := c.vendors.Create(r.Context(), vendor)
	if err != nil {
		logger.WithCtx(r.Context()).Error("create vendor failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not create vendor")
		return
	}

	logger.WithCtx(r.Context()).Info("vendor created", "vendor_id", created.ID.Hex(), "user_id", in.UserID)
	response.Created(w, created)
}

// Update replaces a vendor profile. The body is multipart: a "payload"
// form field with the vendor JSON plus an optional "banner" image file.
// A new banner wins; otherwise the stored banner URL carries forward.
func (c *VendorController) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	if !parseUpload(w, r) {
		return
	}

	var in vendorInput
	if err := bind.MultipartJSON(r, "payload", &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs := validate.Struct(&in); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	id := chi.URLParam(r, "vendorId")
	existing, err := c.vendors.Get(r.Context(), id)
	if err != nil {
		logger.WithCtx(r.Context()).Error("get vendor failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not update vendor")
		return
	}
	if existing == nil {
		response.NotFound(w)
		return
	}

	userID, err := authz.VendorUpdate(p, existing, in.UserID)
	if errors.Is(err, authz.ErrForbidden) {
		response.Forbidden(w)
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("vendor authz failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not update vendor")
		return
	}

	vendor := &models.Vendor{UserID: userID, BannerURL: existing.BannerURL}
	in.apply(vendor)

	if files := formFiles(r, "banner"); len(files) > 0 && files[0].Size > 0 {
		url, err := uploadFile(r.Context(), c.uploader, files[0])
		if err != nil {
			logger.WithCtx(r.Context()).Error("banner upload failed", "error", err)
			response.Error(w, http.StatusInternalServerError, "Could not upload banner")
			return
		}
		vendor.BannerURL = url
	}

	found, err := c.vendors.Update(r.Context(), id, vendor)
	if err != nil {
		logger.WithCtx(r.Context()).Error("update vendor failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not update vendor")
		return
	}
	if !found {
		response.NotFound(w)
		return
	}
	response.Success(w, vendor)
}

func (c *VendorController) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "vendorId")
	found, err := c.vendors.Delete(r.Context(), id)
	if err != nil {
		logger.WithCtx(r.Context()).Error("delete vendor failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not delete vendor")
		return
	}
	if !found {
		response.NotFound(w)
		return
	}
	logger.WithCtx(r.Context()).Info("vendor deleted", "vendor_id", id)
	response.Message(w, "Vendor deleted")
}
