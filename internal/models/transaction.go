package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a journal row.
type TransactionType string

const (
	Deposit  TransactionType = "DEPOSIT"
	Withdraw TransactionType = "WITHDRAW"
	Transfer TransactionType = "TRANSFER"
)

// Transaction represents a row of the append-only transactions journal.
// Rows are never updated or deleted after insertion.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	AccountNumber string          `db:"account_number"`
	Type          TransactionType `db:"transaction_type"`
	Amount        decimal.Decimal `db:"amount"` // NUMERIC(21,2)
	Message       string          `db:"message"`
	TransferTo    *string         `db:"transfer_to"` // Nullable, TRANSFER only
	MakerUserID   string          `db:"maker_user_id"`
	CreatedAt     time.Time       `db:"created_at"`
}
