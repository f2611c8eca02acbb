package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product belongs to exactly one vendor. Category membership is a list of
// category ids validated at create/update time, not a database constraint.
type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VendorID      string             `bson:"vendorId" json:"vendorId"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Price         float64            `bson:"price" json:"price"`
	SalesPrice    float64            `bson:"salesPrice" json:"salesPrice"`
	StockQuantity int                `bson:"stockQuantity" json:"stockQuantity"`
	StockStatus   bool               `bson:"stockStatus" json:"stockStatus"`
	ImageURLs     []string           `bson:"imageUrls" json:"imageUrls"`
	Categories    []string           `bson:"categories" json:"categories"`
	Attributes    map[string]string  `bson:"attributes,omitempty" json:"attributes,omitempty"`
	IsActive      bool               `bson:"isActive" json:"isActive"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     *time.Time         `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
