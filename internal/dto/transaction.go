package dto

import (
	"time"

	"bankcore/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AmountRequest carries the amount for a deposit or withdrawal. Positivity
// is validated here at the boundary and re-checked inside the ledger.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"dgt0"`
}

// TransferRequest carries the amount and the receiving account for a transfer.
type TransferRequest struct {
	Amount                decimal.Decimal `json:"amount" binding:"dgt0"`
	ReceiverAccountNumber string          `json:"receiverAccountNumber" binding:"required"`
}

// BalanceResponse reports the balance after a successful mutation.
type BalanceResponse struct {
	AccountNumber string          `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
}

// TransactionResponse defines the data returned for a journal record.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	AccountNumber string          `json:"accountNumber"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Message       string          `json:"message"`
	TransferTo    *string         `json:"transferTo,omitempty"`
	MakerUserID   string          `json:"makerUserID"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse
func ToTransactionResponse(txn domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		AccountNumber: txn.AccountNumber,
		Type:          string(txn.Type),
		Amount:        txn.Amount,
		Message:       txn.Message,
		TransferTo:    txn.TransferTo,
		MakerUserID:   txn.MakerUserID,
		CreatedAt:     txn.CreatedAt,
	}
}

// ToListTransactionResponse converts domain.Transactions to responses
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		res[i] = ToTransactionResponse(txn)
	}
	return res
}

// AccountEventResponse defines the data returned for a lifecycle event.
type AccountEventResponse struct {
	EventID       string    `json:"eventID"`
	AccountNumber string    `json:"accountNumber"`
	Message       string    `json:"message"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ToListAccountEventResponse converts domain.AccountEvents to responses
func ToListAccountEventResponse(events []domain.AccountEvent) []AccountEventResponse {
	res := make([]AccountEventResponse, len(events))
	for i, ev := range events {
		res[i] = AccountEventResponse{
			EventID:       ev.EventID,
			AccountNumber: ev.AccountNumber,
			Message:       ev.Message,
			CreatedAt:     ev.CreatedAt,
		}
	}
	return res
}
