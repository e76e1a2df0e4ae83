package services

import (
	"context"

	"bankcore/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StatusChangeOutcome distinguishes a performed lifecycle transition from a
// request that found the account already in the target state. The original
// system reported both (and authorization failures) as one opaque result;
// authorization failures are now surfaced separately as apperrors.ErrForbidden.
type StatusChangeOutcome string

const (
	OutcomeChanged     StatusChangeOutcome = "CHANGED"
	OutcomeAlreadyDone StatusChangeOutcome = "ALREADY_DONE"
)

// RoleResolverSvc resolves a user to their bank-wide role. The ledger
// consumes this as an injected capability check instead of reading the
// identity store's schema directly.
type RoleResolverSvc interface {
	RoleOf(ctx context.Context, userID string) (domain.UserRole, error)
}

// LedgerSvcFacade exposes the account lifecycle and balance mutation
// operations. Every operation takes the maker: the already-authenticated
// identity performing it, recorded for audit attribution. The owner of a
// new account arrives already resolved to a user ID by the boundary layer.
type LedgerSvcFacade interface {
	CreateAccount(ctx context.Context, makerUserID, ownerUserID, branchCode string, accountType domain.AccountType, initialBalance decimal.Decimal) (*domain.Account, error)
	Activate(ctx context.Context, accountNumber, makerUserID string) (StatusChangeOutcome, error)
	Deactivate(ctx context.Context, accountNumber, makerUserID string) (StatusChangeOutcome, error)
	Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal, makerUserID string) (decimal.Decimal, error)
	Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal, makerUserID string) (decimal.Decimal, error)
	Transfer(ctx context.Context, sourceAccountNumber, destAccountNumber string, amount decimal.Decimal, makerUserID string) error
}
