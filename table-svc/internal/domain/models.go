package domain

import "time"

type Table struct {
	ID          int       `json:"id"`
	TableNumber int       `json:"table_number"`
	Seats       int       `json:"seats"`
	IsActive    bool      `json:"is_active"`
	QRToken     string    `json:"qr_token"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableSession binds one diner device to a table for roughly two hours.
// Several devices at the same table each hold their own session but resolve
// to the same party.
type TableSession struct {
	ID           int       `json:"id"`
	TableID      int       `json:"table_id"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// Party is the shared ordering context for one seating at one table. At most
// one active party exists per table; the database enforces that.
type Party struct {
	ID        int        `json:"id"`
	TableID   int        `json:"table_id"`
	IsActive  bool       `json:"is_active"`
	WaiterID  *int       `json:"waiter_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
}

// Resolution is what a diner device gets back after scanning a QR code or
// presenting a previously stored session token.
type Resolution struct {
	TableID      int    `json:"table_id"`
	TableNumber  int    `json:"table_number"`
	SessionToken string `json:"session_token"`
}

// TableOverview is the admin listing row: the table plus its current active
// party and assigned waiter, if any.
type TableOverview struct {
	Table
	PartyID    *int    `json:"party_id,omitempty"`
	WaiterCode *string `json:"waiter_code,omitempty"`
}
