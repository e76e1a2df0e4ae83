package services_test

import (
	"context"
	"time"

	"bankcore/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// fakeTxManager runs the transactional closure directly. The pgx.Tx handed
// to the closure is nil; the repository mocks below never touch it.
type fakeTxManager struct {
	err error
}

func (f *fakeTxManager) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(nil)
}

// MockAccountRepository is a mock type for the AccountRepository interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	args := m.Called(ctx, tx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByNumberForUpdate(ctx context.Context, tx pgx.Tx, accountNumber string) (*domain.Account, error) {
	args := m.Called(ctx, tx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountStatus(ctx context.Context, tx pgx.Tx, accountNumber string, status domain.AccountStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, accountNumber, status, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccountBalance(ctx context.Context, tx pgx.Tx, accountNumber string, newBalance decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, accountNumber, newBalance, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockAccountRepository) ListAccountsByOwner(ctx context.Context, ownerUserID string) ([]domain.Account, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// MockBranchRepository is a mock type for the BranchRepository interface
type MockBranchRepository struct {
	mock.Mock
}

func (m *MockBranchRepository) SaveBranch(ctx context.Context, branch domain.Branch) error {
	args := m.Called(ctx, branch)
	return args.Error(0)
}

func (m *MockBranchRepository) FindBranchByCode(ctx context.Context, branchCode string) (*domain.Branch, error) {
	args := m.Called(ctx, branchCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}

func (m *MockBranchRepository) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Branch), args.Error(1)
}

func (m *MockBranchRepository) NextAccountSequence(ctx context.Context, tx pgx.Tx, branchCode string) (int64, error) {
	args := m.Called(ctx, tx, branchCode)
	return args.Get(0).(int64), args.Error(1)
}

// MockJournalRepository is a mock type for the JournalRepository interface
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) SaveTransaction(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	args := m.Called(ctx, tx, txn)
	return args.Error(0)
}

func (m *MockJournalRepository) ListTransactionsByAccount(ctx context.Context, accountNumber string, start, end time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountNumber, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockJournalRepository) SaveAccountEvent(ctx context.Context, tx pgx.Tx, event domain.AccountEvent) error {
	args := m.Called(ctx, tx, event)
	return args.Error(0)
}

func (m *MockJournalRepository) ListEventsByAccount(ctx context.Context, accountNumber string) ([]domain.AccountEvent, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountEvent), args.Error(1)
}

// MockUserRepository is a mock type for the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockRoleResolver is a mock type for the RoleResolverSvc interface
type MockRoleResolver struct {
	mock.Mock
}

func (m *MockRoleResolver) RoleOf(ctx context.Context, userID string) (domain.UserRole, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.UserRole), args.Error(1)
}
