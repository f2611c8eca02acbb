package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is an admin-managed taxonomy entry, independent of vendors
// and products.
type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Slug        string             `bson:"slug,omitempty" json:"slug,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
