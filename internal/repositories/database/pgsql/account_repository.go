package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bankcore/internal/apperrors"
	"bankcore/internal/core/domain"
	portsrepo "bankcore/internal/core/ports/repositories"
	"bankcore/internal/models"
	"bankcore/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const accountColumns = `account_number, account_type, status, owner_user_id, branch_code, balance, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepository
var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

// rowScanner covers both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountNumber,
		&m.AccountType,
		&m.Status,
		&m.OwnerUserID,
		&m.BranchCode,
		&m.Balance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveAccount inserts a new account row within tx.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, query,
		m.AccountNumber,
		m.AccountType,
		m.Status,
		m.OwnerUserID,
		m.BranchCode,
		m.Balance,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: account number %s", apperrors.ErrDuplicate, m.AccountNumber)
		}
		return fmt.Errorf("failed to insert account %s: %w", m.AccountNumber, err)
	}
	return nil
}

// FindAccountByNumber retrieves an account without locking it. Suitable for
// read-only inquiries only; mutations must use the ForUpdate variant.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountNumber, err)
	}

	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// FindAccountByNumberForUpdate retrieves an account and locks its row for
// the remainder of tx.
func (r *PgxAccountRepository) FindAccountByNumberForUpdate(ctx context.Context, tx pgx.Tx, accountNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1 FOR UPDATE;`

	m, err := scanAccount(tx.QueryRow(ctx, query, accountNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock account %s: %w", accountNumber, err)
	}

	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// UpdateAccountStatus persists a status transition within tx. The row must
// already be locked by FindAccountByNumberForUpdate in the same tx.
func (r *PgxAccountRepository) UpdateAccountStatus(ctx context.Context, tx pgx.Tx, accountNumber string, status domain.AccountStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE accounts
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_number = $1;
	`
	ct, err := tx.Exec(ctx, query, accountNumber, models.AccountStatus(status), updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update status of account %s: %w", accountNumber, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountNumber)
	}
	return nil
}

// UpdateAccountBalance persists a new balance within tx. The row must
// already be locked by FindAccountByNumberForUpdate in the same tx.
func (r *PgxAccountRepository) UpdateAccountBalance(ctx context.Context, tx pgx.Tx, accountNumber string, newBalance decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE accounts
		SET balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_number = $1;
	`
	ct, err := tx.Exec(ctx, query, accountNumber, newBalance, updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update balance of account %s: %w", accountNumber, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountNumber)
	}
	return nil
}

// ListAccountsByOwner retrieves all accounts owned by a user, oldest first.
func (r *PgxAccountRepository) ListAccountsByOwner(ctx context.Context, ownerUserID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE owner_user_id = $1 ORDER BY created_at;`

	rows, err := r.Pool.Query(ctx, query, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for owner %s: %w", ownerUserID, err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}

	return mapping.ToDomainAccountSlice(accounts), nil
}
