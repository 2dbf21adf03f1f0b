package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order status progression. Delivered is terminal.
const (
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
)

// ShippingInfo is the delivery address captured with an order.
type ShippingInfo struct {
	Address    string `bson:"address" json:"address"`
	City       string `bson:"city" json:"city"`
	PhoneNo    string `bson:"phone_no" json:"phone_no"`
	PostalCode string `bson:"postal_code" json:"postal_code"`
	Country    string `bson:"country" json:"country"`
}

// OrderItem is a line item snapshot taken at order placement.
type OrderItem struct {
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Name     string             `bson:"name" json:"name"`
	Image    string             `bson:"image" json:"image"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Price    float64            `bson:"price" json:"price"`
}

// PaymentInfo references the gateway payment for an order.
type PaymentInfo struct {
	ID     string `bson:"id" json:"id"`
	Status string `bson:"status" json:"status"`
}

// Order is a placed order owned by a user.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User          primitive.ObjectID `bson:"user" json:"user"`
	ShippingInfo  ShippingInfo       `bson:"shipping_info" json:"shipping_info"`
	OrderItems    []OrderItem        `bson:"order_items" json:"order_items"`
	PaymentInfo   PaymentInfo        `bson:"payment_info" json:"payment_info"`
	PaidAt        time.Time          `bson:"paid_at" json:"paid_at"`
	ItemsPrice    float64            `bson:"items_price" json:"items_price"`
	TaxPrice      float64            `bson:"tax_price" json:"tax_price"`
	ShippingPrice float64            `bson:"shipping_price" json:"shipping_price"`
	TotalPrice    float64            `bson:"total_price" json:"total_price"`
	OrderStatus   string             `bson:"order_status" json:"order_status"`
	DeliveredAt   *time.Time         `bson:"delivered_at,omitempty" json:"delivered_at,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}

// Validate checks the schema constraints enforced at insert time.
func (o *Order) Validate() error {
	var messages []string

	if len(o.OrderItems) == 0 {
		messages = append(messages, "Please add at least one order item")
	}
	for _, item := range o.OrderItems {
		if item.Quantity <= 0 {
			messages = append(messages, "Order item quantity must be positive")
			break
		}
	}
	if o.ShippingInfo.Address == "" || o.ShippingInfo.City == "" || o.ShippingInfo.Country == "" {
		messages = append(messages, "Please enter the shipping information")
	}
	if o.TotalPrice < 0 {
		messages = append(messages, "Order total can not be negative")
	}

	return newValidationError(messages)
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	return s == OrderStatusProcessing || s == OrderStatusShipped || s == OrderStatusDelivered
}
