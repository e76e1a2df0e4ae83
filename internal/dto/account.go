package dto

import (
	"time"

	"bankcore/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to open a new account.
// The owner is looked up by username; the maker comes from the auth context.
type CreateAccountRequest struct {
	Username       string          `json:"username" binding:"required"`
	BranchCode     string          `json:"branchCode" binding:"required,len=5"`
	AccountType    string          `json:"accountType" binding:"required,oneof=01 02"`
	InitialBalance decimal.Decimal `json:"initialBalance" binding:"dgte0"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountNumber string          `json:"accountNumber"`
	AccountType   string          `json:"accountType"`
	Status        string          `json:"status"`
	OwnerUserID   string          `json:"ownerUserID"`
	BranchCode    string          `json:"branchCode"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountNumber: acc.AccountNumber,
		AccountType:   string(acc.AccountType),
		Status:        string(acc.Status),
		OwnerUserID:   acc.OwnerUserID,
		BranchCode:    acc.BranchCode,
		Balance:       acc.Balance,
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to responses
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// StatusChangeResponse reports the result of an activate/deactivate call.
type StatusChangeResponse struct {
	AccountNumber string `json:"accountNumber"`
	Status        string `json:"status"`
	Changed       bool   `json:"changed"`
}
