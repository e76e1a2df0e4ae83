package pgsql

import (
	"context"
	"fmt"
	"time"

	"bankcore/internal/core/domain"
	portsrepo "bankcore/internal/core/ports/repositories"
	"bankcore/internal/models"
	"bankcore/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `transaction_id, account_number, transaction_type, amount, message, transfer_to, maker_user_id, created_at`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for the transaction
// journal and the account event trail.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepository = (*PgxJournalRepository)(nil)

// SaveTransaction appends one journal record within tx, so it commits or
// rolls back together with the balance write it describes.
func (r *PgxJournalRepository) SaveTransaction(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.AccountNumber,
		m.Type,
		m.Amount,
		m.Message,
		m.TransferTo,
		m.MakerUserID,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// ListTransactionsByAccount returns journal records with created_at within
// [start, end] inclusive, in insertion order.
func (r *PgxJournalRepository) ListTransactionsByAccount(ctx context.Context, accountNumber string, start, end time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE account_number = $1 AND created_at BETWEEN $2 AND $3
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, accountNumber, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for account %s: %w", accountNumber, err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var m models.Transaction
		if err := rows.Scan(
			&m.TransactionID,
			&m.AccountNumber,
			&m.Type,
			&m.Amount,
			&m.Message,
			&m.TransferTo,
			&m.MakerUserID,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row for account %s: %w", accountNumber, err)
		}
		transactions = append(transactions, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows for account %s: %w", accountNumber, err)
	}

	return mapping.ToDomainTransactionSlice(transactions), nil
}

// SaveAccountEvent appends one lifecycle event within tx.
func (r *PgxJournalRepository) SaveAccountEvent(ctx context.Context, tx pgx.Tx, event domain.AccountEvent) error {
	query := `
		INSERT INTO account_events (event_id, account_number, message, created_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err := tx.Exec(ctx, query, event.EventID, event.AccountNumber, event.Message, event.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert account event %s: %w", event.EventID, err)
	}
	return nil
}

// ListEventsByAccount returns the account's lifecycle trail in insertion order.
func (r *PgxJournalRepository) ListEventsByAccount(ctx context.Context, accountNumber string) ([]domain.AccountEvent, error) {
	query := `
		SELECT event_id, account_number, message, created_at
		FROM account_events
		WHERE account_number = $1
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, accountNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to query events for account %s: %w", accountNumber, err)
	}
	defer rows.Close()

	events := []domain.AccountEvent{}
	for rows.Next() {
		var m models.AccountEvent
		if err := rows.Scan(&m.EventID, &m.AccountNumber, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account event row: %w", err)
		}
		events = append(events, mapping.ToDomainAccountEvent(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account event rows: %w", err)
	}

	return events, nil
}
