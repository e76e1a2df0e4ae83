package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AccountType identifies the product an account was opened as. The string
// value doubles as the two-character type code inside account numbers.
type AccountType string

const (
	Saving AccountType = "01"
	Fixed  AccountType = "02"
)

// AccountStatus is the lifecycle state of an account. Transitions are
// WAIT -> ACTIVE, ACTIVE -> INACTIVE and INACTIVE -> ACTIVE; there is no
// path from WAIT directly to INACTIVE and accounts are never deleted.
type AccountStatus string

const (
	StatusWaitActivate AccountStatus = "WAIT"
	StatusActive       AccountStatus = "ACTIVE"
	StatusInactive     AccountStatus = "INACTIVE"
)

// accountSequenceDigits is the zero-padded width of the per-branch sequence
// suffix of an account number.
const accountSequenceDigits = 9

// Account represents a customer account held at a branch.
type Account struct {
	AccountNumber string          `json:"accountNumber"` // Unique, assigned once at creation
	AccountType   AccountType     `json:"accountType"`
	Status        AccountStatus   `json:"status"`
	OwnerUserID   string          `json:"ownerUserID"` // FK -> users.user_id
	BranchCode    string          `json:"branchCode"`  // FK -> branches.branch_code
	Balance       decimal.Decimal `json:"balance"`     // Never negative after a committed mutation
	AuditFields
}

// FormatAccountNumber builds an account number from its three parts:
// branch code, account type code and the branch-scoped sequence number.
func FormatAccountNumber(branchCode string, accountType AccountType, sequence int64) string {
	return fmt.Sprintf("%s%s%0*d", branchCode, accountType, accountSequenceDigits, sequence)
}

// IsActive reports whether the account may be the target of deposits,
// withdrawals or transfers.
func (a *Account) IsActive() bool {
	return a.Status == StatusActive
}

// Activate moves the account to ACTIVE from WAIT or INACTIVE. It returns
// false when the account is already active, which callers surface as a
// no-op rather than an error.
func (a *Account) Activate() bool {
	if a.Status == StatusActive {
		return false
	}
	a.Status = StatusActive
	return true
}

// Deactivate moves the account from ACTIVE to INACTIVE. It returns false
// for any other starting status; a never-activated account cannot be
// deactivated.
func (a *Account) Deactivate() bool {
	if a.Status != StatusActive {
		return false
	}
	a.Status = StatusInactive
	return true
}

// CanWithdraw reports whether withdrawing amount keeps the balance
// non-negative. A balance of exactly zero after the withdrawal is allowed.
func (a *Account) CanWithdraw(amount decimal.Decimal) bool {
	return !a.Balance.Sub(amount).IsNegative()
}
