// Package warehouse holds fulfilment types merged with storefront types in
// the union fixtures.
package warehouse

import (
	"time"
)

// Address represents a physical shipping address.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Shipment tracks the fulfilment of an order.
type Shipment struct {
	ID        uint       `json:"id"` // differs from store.Order.ID, which is int64
	OrderID   int64      `json:"order_id"`
	Carrier   string     `json:"carrier"`
	Tracking  string     `json:"tracking"`
	Address   Address    `json:"address"`
	ShippedAt *time.Time `json:"shipped_at,omitempty"`
	OrderedAt time.Time  `json:"ordered_at"`

	attempts int
}

// Parcel is a box inside a shipment.
type Parcel struct {
	Tracking string  `json:"tracking"`
	WeightG  float64 `json:"weight_g"`
}

// Attempts reports the delivery attempts made so far.
func (s Shipment) Attempts() int {
	return s.attempts
}
