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
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ledgerService owns account lifecycle and balance mutation. Every mutation
// runs inside one database transaction with the target account row(s) locked
// FOR UPDATE before any read of balance or status, so concurrent callers on
// the same account serialize at the storage layer.
type ledgerService struct {
	BaseService
	txManager   portsrepo.TxManager
	accountRepo portsrepo.AccountRepository
	branchRepo  portsrepo.BranchRepository
	journalRepo portsrepo.JournalRepository
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(
	txManager portsrepo.TxManager,
	accountRepo portsrepo.AccountRepository,
	branchRepo portsrepo.BranchRepository,
	journalRepo portsrepo.JournalRepository,
	roleResolver portssvc.RoleResolverSvc,
) portssvc.LedgerSvcFacade {
	return &ledgerService{
		BaseService: BaseService{RoleResolver: roleResolver},
		txManager:   txManager,
		accountRepo: accountRepo,
		branchRepo:  branchRepo,
		journalRepo: journalRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// CreateAccount opens a new account under a branch. The account number is
// branchCode + typeCode + zero-padded branch sequence; the sequence bump,
// the account insert and the creation event commit as one transaction, so
// two concurrent creations under a branch can never be issued the same
// number. New accounts always start in WAIT_ACTIVATE.
func (s *ledgerService) CreateAccount(ctx context.Context, makerUserID, ownerUserID, branchCode string, accountType domain.AccountType, initialBalance decimal.Decimal) (*domain.Account, error) {
	if err := s.RequireLedgerMaker(ctx, makerUserID); err != nil {
		return nil, err
	}
	if initialBalance.IsNegative() {
		return nil, fmt.Errorf("%w: initial balance may not be negative", apperrors.ErrInvalidAmount)
	}

	branch, err := s.branchRepo.FindBranchByCode(ctx, branchCode)
	if err != nil {
		return nil, err
	}
	if !branch.IsActive {
		return nil, fmt.Errorf("%w: branch %s does not accept new accounts", apperrors.ErrValidation, branchCode)
	}

	now := time.Now()
	var account domain.Account

	err = s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		seq, err := s.branchRepo.NextAccountSequence(ctx, tx, branchCode)
		if err != nil {
			return err
		}

		account = domain.Account{
			AccountNumber: domain.FormatAccountNumber(branchCode, accountType, seq),
			AccountType:   accountType,
			Status:        domain.StatusWaitActivate,
			OwnerUserID:   ownerUserID,
			BranchCode:    branchCode,
			Balance:       initialBalance,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     makerUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: makerUserID,
			},
		}
		if err := s.accountRepo.SaveAccount(ctx, tx, account); err != nil {
			return err
		}

		return s.journalRepo.SaveAccountEvent(ctx, tx, domain.AccountEvent{
			EventID:       uuid.NewString(),
			AccountNumber: account.AccountNumber,
			Message:       fmt.Sprintf("create account by %s", makerUserID),
			CreatedAt:     now,
		})
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create account", slog.String("branch_code", branchCode))
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.String("account_number", account.AccountNumber))
	return &account, nil
}

// Activate moves an account to ACTIVE from WAIT_ACTIVATE or INACTIVE. An
// already-active account yields OutcomeAlreadyDone without a second event.
func (s *ledgerService) Activate(ctx context.Context, accountNumber, makerUserID string) (portssvc.StatusChangeOutcome, error) {
	if err := s.RequireLedgerMaker(ctx, makerUserID); err != nil {
		return "", err
	}

	outcome := portssvc.OutcomeChanged
	err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		account, err := s.accountRepo.FindAccountByNumberForUpdate(ctx, tx, accountNumber)
		if err != nil {
			return err
		}
		if !account.Activate() {
			outcome = portssvc.OutcomeAlreadyDone
			return nil
		}

		now := time.Now()
		if err := s.accountRepo.UpdateAccountStatus(ctx, tx, accountNumber, account.Status, makerUserID, now); err != nil {
			return err
		}
		return s.journalRepo.SaveAccountEvent(ctx, tx, domain.AccountEvent{
			EventID:       uuid.NewString(),
			AccountNumber: accountNumber,
			Message:       fmt.Sprintf("activate account by %s", makerUserID),
			CreatedAt:     now,
		})
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to activate account", slog.String("account_number", accountNumber))
		}
		return "", err
	}

	s.LogInfo(ctx, "Activate processed", slog.String("account_number", accountNumber), slog.String("outcome", string(outcome)))
	return outcome, nil
}

// Deactivate moves an ACTIVE account to INACTIVE. An already-inactive
// account yields OutcomeAlreadyDone; a never-activated account cannot be
// deactivated and fails with ErrInvalidState.
func (s *ledgerService) Deactivate(ctx context.Context, accountNumber, makerUserID string) (portssvc.StatusChangeOutcome, error) {
	if err := s.RequireLedgerMaker(ctx, makerUserID); err != nil {
		return "", err
	}

	outcome := portssvc.OutcomeChanged
	err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		account, err := s.accountRepo.FindAccountByNumberForUpdate(ctx, tx, accountNumber)
		if err != nil {
			return err
		}
		if account.Status == domain.StatusWaitActivate {
			return fmt.Errorf("%w: account %s was never activated", apperrors.ErrInvalidState, accountNumber)
		}
		if !account.Deactivate() {
			outcome = portssvc.OutcomeAlreadyDone
			return nil
		}

		now := time.Now()
		if err := s.accountRepo.UpdateAccountStatus(ctx, tx, accountNumber, account.Status, makerUserID, now); err != nil {
			return err
		}
		return s.journalRepo.SaveAccountEvent(ctx, tx, domain.AccountEvent{
			EventID:       uuid.NewString(),
			AccountNumber: accountNumber,
			Message:       fmt.Sprintf("deactivate account by %s", makerUserID),
			CreatedAt:     now,
		})
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrInvalidState) {
			s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_number", accountNumber))
		}
		return "", err
	}

	s.LogInfo(ctx, "Deactivate processed", slog.String("account_number", accountNumber), slog.String("outcome", string(outcome)))
	return outcome, nil
}

// Deposit credits an ACTIVE account and appends a DEPOSIT journal record.
// The amount must be strictly positive; the boundary validates this too but
// the ledger re-checks its own invariant.
func (s *ledgerService) Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal, makerUserID string) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: deposit amount must be positive", apperrors.ErrInvalidAmount)
	}

	var newBalance decimal.Decimal
	err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		account, err := s.lockActiveAccount(ctx, tx, accountNumber)
		if err != nil {
			return err
		}
		newBalance, err = s.applyDeposit(ctx, tx, account, amount, makerUserID, true)
		return err
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrAccountNotActive) {
			s.LogError(ctx, err, "Failed to deposit", slog.String("account_number", accountNumber))
		}
		return decimal.Zero, err
	}

	s.LogInfo(ctx, "Deposit completed", slog.String("account_number", accountNumber), slog.String("amount", amount.String()))
	return newBalance, nil
}

// Withdraw debits an ACTIVE account and appends a WITHDRAW journal record.
// The balance may reach exactly zero but never go negative.
func (s *ledgerService) Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal, makerUserID string) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: withdraw amount must be positive", apperrors.ErrInvalidAmount)
	}

	var newBalance decimal.Decimal
	err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		account, err := s.lockActiveAccount(ctx, tx, accountNumber)
		if err != nil {
			return err
		}
		newBalance, err = s.applyWithdraw(ctx, tx, account, amount, makerUserID, true)
		return err
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrAccountNotActive) && !errors.Is(err, apperrors.ErrInsufficientFunds) {
			s.LogError(ctx, err, "Failed to withdraw", slog.String("account_number", accountNumber))
		}
		return decimal.Zero, err
	}

	s.LogInfo(ctx, "Withdraw completed", slog.String("account_number", accountNumber), slog.String("amount", amount.String()))
	return newBalance, nil
}

// Transfer moves amount between two distinct ACTIVE accounts as one atomic
// unit: the withdraw leg carries no journal record of its own, a TRANSFER
// record referencing the destination is appended on the source, and the
// deposit leg appends a DEPOSIT record on the destination. Both rows are
// locked in ascending account-number order regardless of transfer direction,
// so two transfers moving funds in opposite directions between the same pair
// acquire their locks in the same order and cannot deadlock.
func (s *ledgerService) Transfer(ctx context.Context, sourceAccountNumber, destAccountNumber string, amount decimal.Decimal, makerUserID string) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: transfer amount must be positive", apperrors.ErrInvalidAmount)
	}
	if sourceAccountNumber == destAccountNumber {
		return apperrors.ErrSameAccount
	}

	err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		source, destination, err := s.lockTransferPair(ctx, tx, sourceAccountNumber, destAccountNumber)
		if err != nil {
			return err
		}

		if _, err := s.applyWithdraw(ctx, tx, source, amount, makerUserID, false); err != nil {
			return err
		}

		now := time.Now()
		transferTo := destination.AccountNumber
		if err := s.journalRepo.SaveTransaction(ctx, tx, domain.Transaction{
			TransactionID: uuid.NewString(),
			AccountNumber: source.AccountNumber,
			Type:          domain.Transfer,
			Amount:        amount,
			Message:       "Complete Transfer",
			TransferTo:    &transferTo,
			MakerUserID:   makerUserID,
			CreatedAt:     now,
		}); err != nil {
			return err
		}

		_, err = s.applyDeposit(ctx, tx, destination, amount, makerUserID, true)
		return err
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrAccountNotActive) && !errors.Is(err, apperrors.ErrInsufficientFunds) {
			s.LogError(ctx, err, "Failed to transfer",
				slog.String("source_account", sourceAccountNumber),
				slog.String("dest_account", destAccountNumber))
		}
		return err
	}

	s.LogInfo(ctx, "Transfer completed",
		slog.String("source_account", sourceAccountNumber),
		slog.String("dest_account", destAccountNumber),
		slog.String("amount", amount.String()))
	return nil
}

// lockTransferPair locks the source and destination rows in ascending
// account-number order. The order is a property of the pair, not of the
// transfer direction, which rules out the ABBA deadlock between opposing
// concurrent transfers.
func (s *ledgerService) lockTransferPair(ctx context.Context, tx pgx.Tx, sourceAccountNumber, destAccountNumber string) (*domain.Account, *domain.Account, error) {
	first, second := sourceAccountNumber, destAccountNumber
	if second < first {
		first, second = second, first
	}

	firstAccount, err := s.lockActiveAccount(ctx, tx, first)
	if err != nil {
		return nil, nil, err
	}
	secondAccount, err := s.lockActiveAccount(ctx, tx, second)
	if err != nil {
		return nil, nil, err
	}

	if first == sourceAccountNumber {
		return firstAccount, secondAccount, nil
	}
	return secondAccount, firstAccount, nil
}

// lockActiveAccount locks the account row and verifies it is ACTIVE.
func (s *ledgerService) lockActiveAccount(ctx context.Context, tx pgx.Tx, accountNumber string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByNumberForUpdate(ctx, tx, accountNumber)
	if err != nil {
		return nil, err
	}
	if !account.IsActive() {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrAccountNotActive, accountNumber)
	}
	return account, nil
}

// applyDeposit adds amount to the locked account's balance and, when record
// is set, appends a DEPOSIT journal record.
func (s *ledgerService) applyDeposit(ctx context.Context, tx pgx.Tx, account *domain.Account, amount decimal.Decimal, makerUserID string, record bool) (decimal.Decimal, error) {
	now := time.Now()
	newBalance := account.Balance.Add(amount)

	if err := s.accountRepo.UpdateAccountBalance(ctx, tx, account.AccountNumber, newBalance, makerUserID, now); err != nil {
		return decimal.Zero, err
	}
	account.Balance = newBalance

	if record {
		if err := s.journalRepo.SaveTransaction(ctx, tx, domain.Transaction{
			TransactionID: uuid.NewString(),
			AccountNumber: account.AccountNumber,
			Type:          domain.Deposit,
			Amount:        amount,
			Message:       "Complete Deposit",
			MakerUserID:   makerUserID,
			CreatedAt:     now,
		}); err != nil {
			return decimal.Zero, err
		}
	}
	return newBalance, nil
}

// applyWithdraw subtracts amount from the locked account's balance after the
// insufficient-funds check and, when record is set, appends a WITHDRAW
// journal record.
func (s *ledgerService) applyWithdraw(ctx context.Context, tx pgx.Tx, account *domain.Account, amount decimal.Decimal, makerUserID string, record bool) (decimal.Decimal, error) {
	if !account.CanWithdraw(amount) {
		return decimal.Zero, fmt.Errorf("%w: account %s", apperrors.ErrInsufficientFunds, account.AccountNumber)
	}

	now := time.Now()
	newBalance := account.Balance.Sub(amount)

	if err := s.accountRepo.UpdateAccountBalance(ctx, tx, account.AccountNumber, newBalance, makerUserID, now); err != nil {
		return decimal.Zero, err
	}
	account.Balance = newBalance

	if record {
		if err := s.journalRepo.SaveTransaction(ctx, tx, domain.Transaction{
			TransactionID: uuid.NewString(),
			AccountNumber: account.AccountNumber,
			Type:          domain.Withdraw,
			Amount:        amount,
			Message:       "Complete Withdraw",
			MakerUserID:   makerUserID,
			CreatedAt:     now,
		}); err != nil {
			return decimal.Zero, err
		}
	}
	return newBalance, nil
}
