package models

import "time"

// Expense is a single ledger entry owned by exactly one user.
type Expense struct {
	ID       int       `json:"id"`
	UserID   int       `json:"user_id"`
	Amount   float64   `json:"amount"`
	Date     time.Time `json:"date"` // timestamp with timezone, stored UTC
	Category string    `json:"category"`
	Notes    string    `json:"notes,omitempty"`
}
