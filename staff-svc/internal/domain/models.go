package domain

import "time"

const (
	RoleAdmin  = "admin"
	RoleWaiter = "waiter"
	RoleChef   = "chef"
)

// Order statuses as staff sees them. Finalized is terminal and only a
// waiter sets it; the rest are derived from item progress.
const (
	OrderStatusGenerated  = "generated"
	OrderStatusInProgress = "in_progress"
	OrderStatusReady      = "ready"
	OrderStatusFinalized  = "finalized"
)

// Item statuses move strictly forward: to_prepare -> cooking -> ready.
const (
	ItemStatusToPrepare = "to_prepare"
	ItemStatusCooking   = "cooking"
	ItemStatusReady     = "ready"
)

// Urgency buckets for the kitchen board, by order age.
const (
	UrgencyNormal  = "normal"
	UrgencyWarning = "warning"
	UrgencyUrgent  = "urgent"
)

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	WaiterCode   string    `json:"waiter_code,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ClaimableParty is an active party as the waiter views list shows it,
// with its non-finalized order count and running total joined in.
type ClaimableParty struct {
	PartyID     int       `json:"party_id"`
	TableID     int       `json:"table_id"`
	TableNumber int       `json:"table_number"`
	OrderCount  int       `json:"order_count"`
	Total       float64   `json:"total"`
	CreatedAt   time.Time `json:"created_at"`
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

type OrderItem struct {
	ID        int     `json:"id"`
	OrderID   int     `json:"order_id"`
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Status    string  `json:"status"`
}

// KitchenItem is an order line as the kitchen board shows it, with the
// table number joined in so cooks know where it goes.
type KitchenItem struct {
	ID          int       `json:"id"`
	OrderID     int       `json:"order_id"`
	ProductID   int       `json:"product_id"`
	Name        string    `json:"name"`
	Quantity    int       `json:"quantity"`
	Status      string    `json:"status"`
	TableNumber int       `json:"table_number"`
	CreatedAt   time.Time `json:"created_at"`
}

// KitchenGroup collects one order's items of a single status column.
type KitchenGroup struct {
	OrderID     int           `json:"order_id"`
	TableNumber int           `json:"table_number"`
	CreatedAt   time.Time     `json:"created_at"`
	Urgency     string        `json:"urgency"`
	Items       []KitchenItem `json:"items"`
}

// KitchenBoard is the three-column kitchen view, oldest orders first.
type KitchenBoard struct {
	ToPrepare []KitchenGroup `json:"to_prepare"`
	Cooking   []KitchenGroup `json:"cooking"`
	Ready     []KitchenGroup `json:"ready"`
}

// UrgencyFor buckets an order by how long it has been waiting.
func UrgencyFor(age time.Duration) string {
	switch {
	case age >= 20*time.Minute:
		return UrgencyUrgent
	case age >= 10*time.Minute:
		return UrgencyWarning
	default:
		return UrgencyNormal
	}
}
