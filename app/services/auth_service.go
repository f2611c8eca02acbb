// Package services holds the business rules between controllers and the
// MongoDB repositories. Services do the existence checks and ownership
// bookkeeping; controllers only translate HTTP.
package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vendora/vendora/app/models"
	"github.com/vendora/vendora/pkg/auth"
)

var (
	// ErrEmailTaken means another account already uses this email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so responses cannot be used to probe which emails exist.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserRepo is the slice of the user repository AuthService depends on.
type UserRepo interface {
	Find(ctx context.Context, filter bson.M) ([]models.User, error)
	Create(ctx context.Context, u *models.User) (primitive.ObjectID, error)
}

// AuthService registers accounts and issues login tokens.
type AuthService struct {
	users UserRepo
}

func NewAuthService(users UserRepo) *AuthService {
	return &AuthService{users: users}
}

// Register creates a new account. Unknown roles fall back to Customer.
func (s *AuthService) Register(ctx context.Context, username, email, password, role string) (*models.User, error) {
	existing, err := s.users.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         auth.ParseRole(role),
		CreatedAt:    time.Now().UTC(),
	}
	id, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id
	return user, nil
}

// Login verifies the credentials and returns a signed JWT plus the user.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	found, err := s.users.Find(ctx, bson.M{"email": email})
	if err != nil {
		return "", nil, err
	}
	if len(found) == 0 {
		return "", nil, ErrInvalidCredentials
	}

	user := found[0]
	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID.Hex(), user.Email, user.Role.String())
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}
