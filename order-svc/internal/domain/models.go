package domain

import (
	"errors"
	"time"
)

// Order status pipeline. The order-level value is a display projection
// derived from its items, except finalized which only the waiter sets.
const (
	OrderStatusGenerated  = "generated"
	OrderStatusInProgress = "in_progress"
	OrderStatusReady      = "ready"
	OrderStatusFinalized  = "finalized"
)

// Item status pipeline, strictly forward: to_prepare -> cooking -> ready.
const (
	ItemStatusToPrepare = "to_prepare"
	ItemStatusCooking   = "cooking"
	ItemStatusReady     = "ready"
)

var ErrEmptyCart = errors.New("party cart is empty")

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID          int     `json:"id"`
	CategoryID  int     `json:"category_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	IsAvailable bool    `json:"is_available"`
}

// CartItem is one line of the shared party cart, with product fields
// denormalized for display. Quantity is at least 1 while the line exists;
// reaching zero removes the line.
type CartItem struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"image_url,omitempty"`
}

type Order struct {
	ID        int         `json:"id"`
	PartyID   int         `json:"party_id"`
	WaiterID  *int        `json:"waiter_id,omitempty"`
	Status    string      `json:"status"`
	Total     float64     `json:"total"`
	CreatedAt time.Time   `json:"created_at"`
	Items     []OrderItem `json:"items"`
}

// OrderItem snapshots name and price at submission time, so later product
// edits never change a committed order.
type OrderItem struct {
	ID        int     `json:"id"`
	OrderID   int     `json:"order_id"`
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Status    string  `json:"status"`
}
