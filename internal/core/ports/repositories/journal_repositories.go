package repositories

import (
	"context"
	"time"

	"bankcore/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// JournalRepository persists the append-only transaction journal and the
// account event trail. Inserts take a pgx.Tx so journal rows commit or roll
// back together with the balance mutation they record.
type JournalRepository interface {
	SaveTransaction(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error
	// ListTransactionsByAccount returns journal records with created_at in
	// [start, end], ordered by creation time ascending.
	ListTransactionsByAccount(ctx context.Context, accountNumber string, start, end time.Time) ([]domain.Transaction, error)
	SaveAccountEvent(ctx context.Context, tx pgx.Tx, event domain.AccountEvent) error
	ListEventsByAccount(ctx context.Context, accountNumber string) ([]domain.AccountEvent, error)
}
