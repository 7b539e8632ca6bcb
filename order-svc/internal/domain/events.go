package domain

import "time"

const EventOrderGenerated = "order_generated"

// OrderEvent is the kafka message emitted when a cart becomes an order.
// Aggregation consumers read it; realtime subscribers never do, they get a
// bare change notification and re-query instead.
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
