package pgsql

import (
	"context"
	"errors"
	"fmt"

	"bankcore/internal/apperrors"
	"bankcore/internal/core/domain"
	portsrepo "bankcore/internal/core/ports/repositories"
	"bankcore/internal/models"
	"bankcore/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBranchRepository struct {
	BaseRepository
}

// newPgxBranchRepository creates a new repository for branch reference data.
func newPgxBranchRepository(pool *pgxpool.Pool) portsrepo.BranchRepository {
	return &PgxBranchRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BranchRepository = (*PgxBranchRepository)(nil)

// SaveBranch inserts a new branch with its account counter at zero.
func (r *PgxBranchRepository) SaveBranch(ctx context.Context, branch domain.Branch) error {
	query := `
		INSERT INTO branches (branch_code, name, is_active, account_seq, created_at)
		VALUES ($1, $2, $3, 0, $4);
	`
	_, err := r.Pool.Exec(ctx, query, branch.BranchCode, branch.Name, branch.IsActive, branch.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: branch %s", apperrors.ErrDuplicate, branch.BranchCode)
		}
		return fmt.Errorf("failed to insert branch %s: %w", branch.BranchCode, err)
	}
	return nil
}

// FindBranchByCode retrieves a branch by its code.
func (r *PgxBranchRepository) FindBranchByCode(ctx context.Context, branchCode string) (*domain.Branch, error) {
	query := `SELECT branch_code, name, is_active, account_seq, created_at FROM branches WHERE branch_code = $1;`

	var m models.Branch
	err := r.Pool.QueryRow(ctx, query, branchCode).Scan(&m.BranchCode, &m.Name, &m.IsActive, &m.AccountSeq, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find branch %s: %w", branchCode, err)
	}

	b := mapping.ToDomainBranch(m)
	return &b, nil
}

// ListBranches retrieves all branches ordered by code.
func (r *PgxBranchRepository) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	query := `SELECT branch_code, name, is_active, account_seq, created_at FROM branches ORDER BY branch_code;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query branches: %w", err)
	}
	defer rows.Close()

	branches := []models.Branch{}
	for rows.Next() {
		var m models.Branch
		if err := rows.Scan(&m.BranchCode, &m.Name, &m.IsActive, &m.AccountSeq, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan branch row: %w", err)
		}
		branches = append(branches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating branch rows: %w", err)
	}

	return mapping.ToDomainBranchSlice(branches), nil
}

// NextAccountSequence bumps the branch's account counter and returns the new
// value. The UPDATE takes an exclusive lock on the branch row for the rest
// of tx, so concurrent creations under the same branch serialize here and
// can never observe the same sequence number.
func (r *PgxBranchRepository) NextAccountSequence(ctx context.Context, tx pgx.Tx, branchCode string) (int64, error) {
	query := `
		UPDATE branches
		SET account_seq = account_seq + 1
		WHERE branch_code = $1
		RETURNING account_seq;
	`
	var seq int64
	err := tx.QueryRow(ctx, query, branchCode).Scan(&seq)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%w: branch %s", apperrors.ErrNotFound, branchCode)
		}
		return 0, fmt.Errorf("failed to allocate account sequence for branch %s: %w", branchCode, err)
	}
	return seq, nil
}
