package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TxManager runs a function inside a single database transaction. The
// transaction is committed when fn returns nil and rolled back otherwise,
// so a failed transfer or status change leaves no partial writes behind.
type TxManager interface {
	WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// RepositoryProvider bundles all repositories so services can be wired up
// from a single place.
type RepositoryProvider struct {
	Tx          TxManager
	AccountRepo AccountRepository
	BranchRepo  BranchRepository
	JournalRepo JournalRepository
	UserRepo    UserRepository
}
