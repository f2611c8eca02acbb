package controllers

import (
	"errors"
	"net/http"

	"github.com/vendora/vendora/app/models"
	"github.com/vendora/vendora/app/services"
	"github.com/vendora/vendora/pkg/bind"
	"github.com/vendora/vendora/pkg/logger"
	"github.com/vendora/vendora/pkg/response"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

type registerInput struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"nullable,in=Customer,Vendor,Admin"`
}

type loginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in registerInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.auth.Register(r.Context(), in.Username, in.Email, in.Password, in.Role)
	if errors.Is(err, services.ErrEmailTaken) {
		response.Error(w, http.StatusConflict, "Email is already registered")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("register failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not register user")
		return
	}

	logger.WithCtx(r.Context()).Info("user registered", "user_id", user.ID.Hex(), "role", user.Role)
	response.Created(w, user)
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	token, user, err := c.auth.Login(r.Context(), in.Email, in.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		response.Error(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("login failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not log in")
		return
	}

	response.Success(w, loginResult{Token: token, User: user})
}
