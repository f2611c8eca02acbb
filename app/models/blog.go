package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog is platform-authored content: admin-only writes, publicly readable.
// ImageURL is the cover image; ContentImages are inline images in order.
type Blog struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Body          string             `bson:"body" json:"body"`
	ImageURL      string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	ContentImages []string           `bson:"contentImages" json:"contentImages"`
	Published     bool               `bson:"published" json:"published"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     *time.Time         `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
