package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bankcore/internal/apperrors"
	"bankcore/internal/core/domain"
	portsrepo "bankcore/internal/core/ports/repositories"
	portssvc "bankcore/internal/core/ports/services"
)

// statementMonthsBack is how far a statement reaches when no start date is
// given: six calendar months.
const statementMonthsBack = 6

// statementService provides read-only projections over the journal and the
// account event trail.
type statementService struct {
	BaseService
	accountRepo portsrepo.AccountRepository
	journalRepo portsrepo.JournalRepository
}

// NewStatementService creates a new statement service.
func NewStatementService(accountRepo portsrepo.AccountRepository, journalRepo portsrepo.JournalRepository) portssvc.StatementSvcFacade {
	return &statementService{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
	}
}

var _ portssvc.StatementSvcFacade = (*statementService)(nil)

// truncateToMidnight drops the time-of-day portion of t.
func truncateToMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Statement returns the account's journal records with created_at in
// [start, end] inclusive, ordered by creation time. An omitted start
// defaults to six months ago truncated to midnight; an omitted end defaults
// to now, so same-day records are included. Both bounds are always applied.
func (s *statementService) Statement(ctx context.Context, accountNumber string, start, end *time.Time) ([]domain.Transaction, error) {
	now := time.Now()

	startDate := truncateToMidnight(now.AddDate(0, -statementMonthsBack, 0))
	if start != nil {
		startDate = *start
	}
	endDate := now
	if end != nil {
		endDate = *end
	}

	if startDate.After(endDate) {
		return nil, fmt.Errorf("%w: start %s is after end %s", apperrors.ErrInvalidRange,
			startDate.Format(time.DateOnly), endDate.Format(time.DateOnly))
	}

	if _, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber); err != nil {
		return nil, err
	}

	transactions, err := s.journalRepo.ListTransactionsByAccount(ctx, accountNumber, startDate, endDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to list statement transactions", slog.String("account_number", accountNumber))
		return nil, err
	}

	s.LogDebug(ctx, "Statement produced",
		slog.String("account_number", accountNumber),
		slog.Int("count", len(transactions)))
	return transactions, nil
}

// GetAccount retrieves one account for inquiry, without locking it.
func (s *statementService) GetAccount(ctx context.Context, accountNumber string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account_number", accountNumber))
		}
		return nil, err
	}
	return account, nil
}

// ListAccountsByOwner retrieves all accounts of one owner.
func (s *statementService) ListAccountsByOwner(ctx context.Context, ownerUserID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByOwner(ctx, ownerUserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for owner", slog.String("owner_user_id", ownerUserID))
		return nil, err
	}
	return accounts, nil
}

// ListAccountEvents retrieves the account's lifecycle trail.
func (s *statementService) ListAccountEvents(ctx context.Context, accountNumber string) ([]domain.AccountEvent, error) {
	if _, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber); err != nil {
		return nil, err
	}

	events, err := s.journalRepo.ListEventsByAccount(ctx, accountNumber)
	if err != nil {
		s.LogError(ctx, err, "Failed to list account events", slog.String("account_number", accountNumber))
		return nil, err
	}
	return events, nil
}
