package repositories

import (
	"context"
	"time"

	"bankcore/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountRepository persists account rows. Methods taking a pgx.Tx must be
// called inside a transaction started through TxManager; the ForUpdate
// variant acquires an exclusive row lock so read-modify-write sequences are
// atomic with respect to concurrent mutators of the same account.
type AccountRepository interface {
	SaveAccount(ctx context.Context, tx pgx.Tx, account domain.Account) error
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)
	FindAccountByNumberForUpdate(ctx context.Context, tx pgx.Tx, accountNumber string) (*domain.Account, error)
	UpdateAccountStatus(ctx context.Context, tx pgx.Tx, accountNumber string, status domain.AccountStatus, updatedBy string, updatedAt time.Time) error
	UpdateAccountBalance(ctx context.Context, tx pgx.Tx, accountNumber string, newBalance decimal.Decimal, updatedBy string, updatedAt time.Time) error
	ListAccountsByOwner(ctx context.Context, ownerUserID string) ([]domain.Account, error)
}
