package repositories

import (
	"context"

	"bankcore/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// BranchRepository persists branch reference data and owns the branch-scoped
// account-number counter.
type BranchRepository interface {
	SaveBranch(ctx context.Context, branch domain.Branch) error
	FindBranchByCode(ctx context.Context, branchCode string) (*domain.Branch, error)
	ListBranches(ctx context.Context) ([]domain.Branch, error)
	// NextAccountSequence increments and returns the branch's account counter,
	// locking the branch row for the remainder of tx. Two concurrent account
	// creations under the same branch therefore serialize and can never be
	// handed the same sequence number.
	NextAccountSequence(ctx context.Context, tx pgx.Tx, branchCode string) (int64, error)
}
