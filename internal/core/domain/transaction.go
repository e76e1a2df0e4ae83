package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a journal record.
type TransactionType string

const (
	Deposit  TransactionType = "DEPOSIT"
	Withdraw TransactionType = "WITHDRAW"
	Transfer TransactionType = "TRANSFER"
)

// Transaction is one immutable journal record for a balance-affecting
// operation on a single account. A transfer produces a TRANSFER record on
// the debited account (carrying TransferTo) and a plain DEPOSIT record on
// the credited account.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary key (UUID)
	AccountNumber string          `json:"accountNumber"` // FK -> accounts.account_number
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"` // Positive value
	Message       string          `json:"message"`
	TransferTo    *string         `json:"transferTo,omitempty"` // Counterpart account number, TRANSFER only
	MakerUserID   string          `json:"makerUserID"`          // Authorizing identity
	CreatedAt     time.Time       `json:"createdAt"`
}
