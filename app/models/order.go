package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the order lifecycle state.
type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
	OrderRefunded   OrderStatus = "Refunded"
)

// Order is modeled but not exposed by any endpoint yet. No service or
// controller operates on it; it exists as the stored shape for future
// checkout work.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerID      string             `bson:"customerId" json:"customerId"`
	Items           []OrderItem        `bson:"items" json:"items"`
	Status          OrderStatus        `bson:"status" json:"status"`
	ShippingAddress ShippingAddress    `bson:"shippingAddress" json:"shippingAddress"`
	PaymentInfo     PaymentInfo        `bson:"paymentInfo" json:"paymentInfo"`
	Subtotal        float64            `bson:"subtotal" json:"subtotal"`
	Tax             float64            `bson:"tax" json:"tax"`
	ShippingCost    float64            `bson:"shippingCost" json:"shippingCost"`
	Total           float64            `bson:"total" json:"total"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       *time.Time         `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

type OrderItem struct {
	ProductID   string  `bson:"productId" json:"productId"`
	ProductName string  `bson:"productName" json:"productName"`
	UnitPrice   float64 `bson:"unitPrice" json:"unitPrice"`
	Quantity    int     `bson:"quantity" json:"quantity"`
	VendorID    string  `bson:"vendorId" json:"vendorId"`
}

type ShippingAddress struct {
	FullName   string `bson:"fullName" json:"fullName"`
	Street     string `bson:"street" json:"street"`
	City       string `bson:"city" json:"city"`
	State      string `bson:"state" json:"state"`
	Country    string `bson:"country" json:"country"`
	PostalCode string `bson:"postalCode" json:"postalCode"`
	Phone      string `bson:"phone" json:"phone"`
}

type PaymentInfo struct {
	PaymentMethod string     `bson:"paymentMethod" json:"paymentMethod"`
	TransactionID string     `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	Status        string     `bson:"status" json:"status"`
	PaidAt        *time.Time `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
}
