package domain

import "time"

// AccountEvent is one append-only entry in an account's lifecycle trail,
// e.g. "create account by somestaff" or "activate account by somestaff".
type AccountEvent struct {
	EventID       string    `json:"eventID"` // Primary key (UUID)
	AccountNumber string    `json:"accountNumber"`
	Message       string    `json:"message"`
	CreatedAt     time.Time `json:"createdAt"`
}
