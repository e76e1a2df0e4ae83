package models

import "time"

// AccountEvent represents a row of the append-only account_events trail.
type AccountEvent struct {
	EventID       string    `db:"event_id"`
	AccountNumber string    `db:"account_number"`
	Message       string    `db:"message"`
	CreatedAt     time.Time `db:"created_at"`
}
