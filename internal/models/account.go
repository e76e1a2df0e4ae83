package models

import (
	"github.com/shopspring/decimal"
)

// AccountType is the two-character product code stored in the DB and used
// as the middle segment of an account number.
type AccountType string

const (
	Saving AccountType = "01"
	Fixed  AccountType = "02"
)

// AccountStatus is the persisted lifecycle state of an account.
type AccountStatus string

const (
	StatusWaitActivate AccountStatus = "WAIT"
	StatusActive       AccountStatus = "ACTIVE"
	StatusInactive     AccountStatus = "INACTIVE"
)

// Account represents an account row as stored in the accounts table.
type Account struct {
	AccountNumber string          `db:"account_number"`
	AccountType   AccountType     `db:"account_type"`
	Status        AccountStatus   `db:"status"`
	OwnerUserID   string          `db:"owner_user_id"`
	BranchCode    string          `db:"branch_code"`
	Balance       decimal.Decimal `db:"balance"` // NUMERIC(21,2)
	AuditFields                   // Embed common audit fields
}
