// Package store holds the source types of the storefront fixtures used by
// the loader and end-to-end tests.
package store

import (
	"time"
)

// Audit is embedded by types that track their edits.
type Audit struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedBy string    `json:"updated_by"`
}

// Product represents an individual item available for sale.
// Price is kept in cents to avoid floating-point errors.
type Product struct {
	ID          int64  `json:"id"`
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	PriceCents  int64  `json:"price_cents"`
	Inventory   int    `json:"inventory_count"`

	_ struct{} // forces keyed literals
}

// Customer represents the user placing orders.
type Customer struct {
	ID       int64   `json:"id"`
	Email    string  `json:"email"`
	FullName string  `json:"full_name"`
	Address  *string `json:"address"`
	IsActive bool    `json:"is_active"`

	passwordHash string
}

// Order represents a transaction made by a customer.
type Order struct {
	Audit

	ID         int64       `json:"id"`
	CustomerID int64       `json:"customer_id"`
	Status     OrderStatus `json:"status"`
	TotalCents int64       `json:"total_cents"`
	Items      []OrderItem `json:"items"`
	OrderedAt  time.Time   `json:"ordered_at"`

	revision int
}

// OrderItem represents a specific product line within an order.
// It snapshots the price at the time of purchase.
type OrderItem struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// OrderStatus is a custom type for type-safe status handling.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// Page is a generic result page; generic types are not derivation sources.
type Page[T any] struct {
	Items []T
	Next  string
}

// Revision reports how many times the order was saved.
func (o Order) Revision() int {
	return o.revision
}

// CheckPassword is a placeholder keeping passwordHash referenced.
func (c Customer) CheckPassword(hash string) bool {
	return c.passwordHash == hash
}
