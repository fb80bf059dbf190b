package store

import (
	"time"
)

// 1. Product represents an individual item available for sale.
// We use int64 for Price to represent cents (lowest currency unit) to avoid floating-point errors.
//
//rowmap:generate
type Product struct {
	ID          int64
	SKU         string
	Name        string
	Description *string
	PriceCents  int64     `rowmap:"price_cents"`
	Inventory   int       `rowmap:"inventory_count"`
	CreatedAt   time.Time `rowmap:"created_at"`
}

// 2. Customer represents the user placing orders.
//
//rowmap:generate
type Customer struct {
	ID       int64
	Email    string
	FullName string  `rowmap:"full_name"`
	Address  *string // In a complex app, this might be its own struct
	IsActive bool    `rowmap:"is_active"`
}

// 3. VIPCustomer extends Customer; its own Email shadows the base one.
//
//rowmap:generate
type VIPCustomer struct {
	Customer
	Tier  Priority
	Email string
}

// 4. Audit holds bookkeeping columns shared by several tables.
type Audit struct {
	CreatedBy string     `rowmap:"created_by"`
	UpdatedAt *time.Time `rowmap:"updated_at"`
	Revision  int
}

// 5. Order represents a transaction made by a customer.
//
//rowmap:generate
type Order struct {
	*Audit
	ID         int64
	CustomerID int64 `rowmap:"customer_id"`
	Status     OrderStatus
	Priority   Priority
	TotalCents int64       `rowmap:"total_cents"`
	Items      []OrderItem `rowmap:"-"` // Has-Many relationship, loaded separately
	OrderedAt  time.Time   `rowmap:"ordered_at"`
}

// NewOrder returns an order in its initial state.
func NewOrder() *Order {
	return &Order{Status: StatusPending, Priority: PriorityNormal}
}

// 6. OrderItem represents a specific product line within an order.
// It snapshots the price at the time of purchase.
//
//rowmap:generate
type OrderItem struct {
	ProductID int64  `rowmap:"product_id"`
	Name      string // Redundant but useful for history if product name changes
	Quantity  int
	UnitPrice int64 `rowmap:"unit_price"`
}

// NewOrderItem needs its arguments, so no materializer is generated for OrderItem.
func NewOrderItem(productID int64, quantity int) OrderItem {
	return OrderItem{ProductID: productID, Quantity: quantity}
}

// 7. Session is only ever filled field by field.
//
//rowmap:generate nomaterialize
type Session struct {
	Token     string
	ExpiresIn time.Duration `rowmap:"expires_in"`
	Scopes    []string
}

// 8. Shipment is validated on construction.
//
//rowmap:generate
type Shipment struct {
	ID        int64
	OrderID   int64 `rowmap:"order_id"`
	Carrier   string
	ShippedAt *time.Time `rowmap:"shipped_at"`
}

// NewShipment also returns an error, so no materializer is generated for Shipment.
func NewShipment() (*Shipment, error) {
	return &Shipment{Carrier: "post"}, nil
}

// OrderStatus is a custom type for type-safe status handling.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// Priority is stored as a small integer.
type Priority int8

const (
	PriorityLow Priority = iota
	PriorityNormal
	PriorityHigh
)
