package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vendora/vendora/pkg/auth"
)

// User is an authenticated account. The password hash is never serialised
// in API responses.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Role         auth.Role          `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
