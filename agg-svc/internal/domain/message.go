package domain

import "time"

const EventOrderGenerated = "order_generated"

// OrderEvent mirrors the message the order service writes to the orders
// topic. Each service keeps its own copy of the wire type.
type OrderEvent struct {
	Type        string           `json:"type"`
	OrderID     int              `json:"order_id"`
	PartyID     int              `json:"party_id"`
	TableNumber int              `json:"table_number"`
	Total       float64          `json:"total"`
	Items       []OrderEventItem `json:"items"`
	Timestamp   time.Time        `json:"timestamp"`
}

type OrderEventItem struct {
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}
