package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vendor is a selling business owned by exactly one user. At most one
// vendor exists per user; lookups by userId take the first match.
type Vendor struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         string             `bson:"userId" json:"userId"`
	BusinessName   string             `bson:"businessName" json:"businessName"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	BannerURL      string             `bson:"bannerUrl,omitempty" json:"bannerUrl,omitempty"`
	Rating         *float64           `bson:"rating,omitempty" json:"rating,omitempty"`
	Notice         string             `bson:"notice,omitempty" json:"notice,omitempty"`
	Phone          string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Status         string             `bson:"status,omitempty" json:"status,omitempty"`
	Email          string             `bson:"email,omitempty" json:"email,omitempty"`
	Location       string             `bson:"location,omitempty" json:"location,omitempty"`
	CommissionRate float64            `bson:"commissionRate" json:"commissionRate"`
	IsApproved     bool               `bson:"isApproved" json:"isApproved"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
