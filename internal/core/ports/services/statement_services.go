package services

import (
	"context"
	"time"

	"bankcore/internal/core/domain"
)

// StatementSvcFacade provides read-only projections over the journal and
// the account event trail. It never mutates state.
type StatementSvcFacade interface {
	// Statement returns the account's journal records ordered by creation
	// time. A nil start defaults to six calendar months before now truncated
	// to midnight; a nil end defaults to now.
	Statement(ctx context.Context, accountNumber string, start, end *time.Time) ([]domain.Transaction, error)
	GetAccount(ctx context.Context, accountNumber string) (*domain.Account, error)
	ListAccountsByOwner(ctx context.Context, ownerUserID string) ([]domain.Account, error)
	ListAccountEvents(ctx context.Context, accountNumber string) ([]domain.AccountEvent, error)
}
