package models

import (
	"time"
)

// OrderStatus describes fulfillment progress of an order.
type OrderStatus string

const (
	StatusPending  OrderStatus = "pending"
	StatusSuccess  OrderStatus = "success"
	StatusDispatch OrderStatus = "dispatch"

	// StatusNone is the zero value before an order is ever assigned a status.
	StatusNone OrderStatus = ""

	// FilterAll is the filter value that matches every status.
	FilterAll = "All"
)

// ValidStatus reports whether s is one of the three assignable statuses.
// StatusNone is readable but never writable.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusSuccess, StatusDispatch:
		return true
	}
	return false
}

// ValidFilter reports whether f is usable as a dashboard status filter.
func ValidFilter(f string) bool {
	return f == FilterAll || ValidStatus(OrderStatus(f))
}

// CartItem represents one product line within an order, with its product
// reference already resolved to a display name and image asset.
type CartItem struct {
	Name     string `json:"name"`
	ImageRef string `json:"image_ref,omitempty"`
	Size     string `json:"size,omitempty"`
	Color    string `json:"color,omitempty"`
	Quantity int    `json:"quantity"`
}

// Order represents a purchased transaction as shown on the dashboard.
// Everything except Status is immutable from this system's perspective.
type Order struct {
	ID         string      `json:"id"`
	FirstName  string      `json:"firstname"`
	LastName   string      `json:"lastname"`
	Email      string      `json:"email"`
	Phone      int64       `json:"phone"`
	Address    string      `json:"address"`
	City       string      `json:"city"`
	ZipCode    int         `json:"zipcode"`
	TotalPrice float64     `json:"total_price"`
	OrderDate  time.Time   `json:"order_date"`
	Status     OrderStatus `json:"order_status,omitempty"`
	CartItems  []CartItem  `json:"cart_items"`
}

// FullName is the string the dashboard search box matches against.
func (o Order) FullName() string {
	return o.FirstName + " " + o.LastName
}
