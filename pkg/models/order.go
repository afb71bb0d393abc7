package models

import (
	"time"
)

// Order statuses. Orders are created as StatusPending; every later
// transition belongs to the fulfillment process, not this service.
const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusProcessing = "processing"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// Product is catalog reference data. The storefront never mutates it.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       Money  `json:"price"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

// LineItem pairs a product with a quantity inside a cart. Quantity is
// always >= 1; an item dropping to zero is removed instead of retained.
type LineItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

func (li LineItem) Subtotal() Money {
	return li.Product.Price.Mul(li.Quantity)
}

// OrderItem is the snapshotted form of a line item inside a submitted
// order: name and price are frozen at checkout time.
type OrderItem struct {
	ProductID   string `json:"productId" validate:"required"`
	ProductName string `json:"productName" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,min=1"`
	Price       Money  `json:"price"`
}

type Order struct {
	ID              string      `json:"id"`
	CustomerID      string      `json:"customerId"`
	Items           []OrderItem `json:"items"`
	TotalPrice      Money       `json:"totalPrice"`
	Status          string      `json:"status"`
	CreatedAt       time.Time   `json:"createdAt"`
	DeliveryAddress string      `json:"deliveryAddress"`
	Notes           string      `json:"notes,omitempty"`
}

// CheckoutRequest is the payload the storefront posts to create an
// order: customer fields plus the snapshotted cart contents. The
// validate tags are the single source of field rules; internal/orders
// registers the custom phone and postalcode validators.
type CheckoutRequest struct {
	CustomerName    string      `json:"customerName" validate:"required,min=2,max=50"`
	Email           string      `json:"email" validate:"required,email"`
	Phone           string      `json:"phone" validate:"required,phone"`
	CoffeeType      string      `json:"coffeeType" validate:"required"`
	Quantity        int         `json:"quantity" validate:"required,min=1,max=100"`
	DeliveryAddress string      `json:"deliveryAddress" validate:"required,min=5"`
	PostalCode      string      `json:"postalCode" validate:"required,postalcode"`
	City            string      `json:"city" validate:"required,min=2"`
	Notes           string      `json:"notes,omitempty"`
	Items           []OrderItem `json:"items" validate:"required,min=1,dive"`
	TotalPrice      Money       `json:"totalPrice"`
}
