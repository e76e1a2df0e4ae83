package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"bankcore/internal/apperrors"
	"bankcore/internal/core/domain"
	portssvc "bankcore/internal/core/ports/services"
	"bankcore/internal/dto"
	"bankcore/internal/handlers"
	"bankcore/internal/middleware"
	"bankcore/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) CreateAccount(ctx context.Context, makerUserID, ownerUserID, branchCode string, accountType domain.AccountType, initialBalance decimal.Decimal) (*domain.Account, error) {
	args := m.Called(ctx, makerUserID, ownerUserID, branchCode, accountType, initialBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockLedgerService) Activate(ctx context.Context, accountNumber, makerUserID string) (portssvc.StatusChangeOutcome, error) {
	args := m.Called(ctx, accountNumber, makerUserID)
	return args.Get(0).(portssvc.StatusChangeOutcome), args.Error(1)
}
func (m *MockLedgerService) Deactivate(ctx context.Context, accountNumber, makerUserID string) (portssvc.StatusChangeOutcome, error) {
	args := m.Called(ctx, accountNumber, makerUserID)
	return args.Get(0).(portssvc.StatusChangeOutcome), args.Error(1)
}
func (m *MockLedgerService) Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal, makerUserID string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountNumber, amount, makerUserID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockLedgerService) Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal, makerUserID string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountNumber, amount, makerUserID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockLedgerService) Transfer(ctx context.Context, sourceAccountNumber, destAccountNumber string, amount decimal.Decimal, makerUserID string) error {
	args := m.Called(ctx, sourceAccountNumber, destAccountNumber, amount, makerUserID)
	return args.Error(0)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock StatementService ---
type MockStatementService struct {
	mock.Mock
}

func (m *MockStatementService) Statement(ctx context.Context, accountNumber string, start, end *time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountNumber, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockStatementService) GetAccount(ctx context.Context, accountNumber string) (*domain.Account, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockStatementService) ListAccountsByOwner(ctx context.Context, ownerUserID string) ([]domain.Account, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockStatementService) ListAccountEvents(ctx context.Context, accountNumber string) ([]domain.AccountEvent, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountEvent), args.Error(1)
}

var _ portssvc.StatementSvcFacade = (*MockStatementService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) RoleOf(ctx context.Context, userID string) (domain.UserRole, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.UserRole), args.Error(1)
}
func (m *MockUserService) CreateUser(ctx context.Context, makerUserID string, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, makerUserID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) EnsureAdminUser(ctx context.Context, username, password string) error {
	args := m.Called(ctx, username, password)
	return args.Error(0)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

var registerValidationsOnce sync.Once

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockLedger    *MockLedgerService
	mockStatement *MockStatementService
	mockUsers     *MockUserService
	jwtSecret     string
}

func (suite *AccountHandlerTestSuite) generateTestToken(userID string) string {
	token, err := utils.GenerateJWT(userID, suite.jwtSecret, time.Hour, "bankcore-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	registerValidationsOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = dto.RegisterValidations(v)
		}
	})

	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockLedger = new(MockLedgerService)
	suite.mockStatement = new(MockStatementService)
	suite.mockUsers = new(MockUserService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterAccountRoutes(v1, suite.mockLedger, suite.mockStatement, suite.mockUsers)
}

func (suite *AccountHandlerTestSuite) doRequest(method, path, userID string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	staffID := uuid.NewString()
	ownerID := uuid.NewString()

	suite.mockUsers.On("GetUserByUsername", mock.Anything, "alice").
		Return(&domain.User{UserID: ownerID, Username: "alice", Role: domain.RoleCustomer}, nil).Once()
	suite.mockLedger.On("CreateAccount", mock.Anything, staffID, ownerID, "00000", domain.Saving,
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.RequireFromString("500.00")) })).
		Return(&domain.Account{
			AccountNumber: "0000001000000001",
			AccountType:   domain.Saving,
			Status:        domain.StatusWaitActivate,
			OwnerUserID:   ownerID,
			BranchCode:    "00000",
			Balance:       decimal.RequireFromString("500.00"),
		}, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/accounts", staffID, dto.CreateAccountRequest{
		Username:       "alice",
		BranchCode:     "00000",
		AccountType:    "01",
		InitialBalance: decimal.RequireFromString("500.00"),
	})

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("0000001000000001", resp.AccountNumber)
	suite.Equal("WAIT", resp.Status)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_ForbiddenMapsTo403() {
	staffID := uuid.NewString()

	suite.mockUsers.On("GetUserByUsername", mock.Anything, "alice").
		Return(&domain.User{UserID: uuid.NewString(), Username: "alice"}, nil).Once()
	suite.mockLedger.On("CreateAccount", mock.Anything, staffID, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrForbidden).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/accounts", staffID, dto.CreateAccountRequest{
		Username:       "alice",
		BranchCode:     "00000",
		AccountType:    "01",
		InitialBalance: decimal.Zero,
	})

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_UnknownOwner() {
	staffID := uuid.NewString()

	suite.mockUsers.On("GetUserByUsername", mock.Anything, "ghost").
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/accounts", staffID, dto.CreateAccountRequest{
		Username:       "ghost",
		BranchCode:     "00000",
		AccountType:    "01",
		InitialBalance: decimal.Zero,
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "CreateAccount",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_MissingAuthHeader() {
	raw, _ := json.Marshal(dto.CreateAccountRequest{Username: "alice", BranchCode: "00000", AccountType: "01"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AccountHandlerTestSuite) TestActivate_ReportsNoChange() {
	staffID := uuid.NewString()
	accountNumber := "0000001000000001"

	suite.mockLedger.On("Activate", mock.Anything, accountNumber, staffID).
		Return(portssvc.OutcomeAlreadyDone, nil).Once()

	w := suite.doRequest(http.MethodPut, "/api/v1/accounts/"+accountNumber+"/activate", staffID, nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.StatusChangeResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("ACTIVE", resp.Status)
	suite.False(resp.Changed)
}

func (suite *AccountHandlerTestSuite) TestDeposit_Success() {
	staffID := uuid.NewString()
	accountNumber := "0000001000000001"

	suite.mockUsers.On("RoleOf", mock.Anything, staffID).Return(domain.RoleStaff, nil).Once()
	suite.mockLedger.On("Deposit", mock.Anything, accountNumber,
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.RequireFromString("25.00")) }), staffID).
		Return(decimal.RequireFromString("125.00"), nil).Once()

	w := suite.doRequest(http.MethodPut, "/api/v1/accounts/"+accountNumber+"/deposit", staffID,
		dto.AmountRequest{Amount: decimal.RequireFromString("25.00")})

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.BalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Balance.Equal(decimal.RequireFromString("125.00")))
}

func (suite *AccountHandlerTestSuite) TestDeposit_CustomerRoleRejected() {
	customerID := uuid.NewString()

	suite.mockUsers.On("RoleOf", mock.Anything, customerID).Return(domain.RoleCustomer, nil).Once()

	w := suite.doRequest(http.MethodPut, "/api/v1/accounts/0000001000000001/deposit", customerID,
		dto.AmountRequest{Amount: decimal.RequireFromString("25.00")})

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "Deposit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestDeposit_NonPositiveAmountRejectedAtBinding() {
	staffID := uuid.NewString()

	suite.mockUsers.On("RoleOf", mock.Anything, staffID).Return(domain.RoleStaff, nil).Once()

	w := suite.doRequest(http.MethodPut, "/api/v1/accounts/0000001000000001/deposit", staffID,
		dto.AmountRequest{Amount: decimal.Zero})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "Deposit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestWithdraw_InsufficientFundsMapsTo422() {
	staffID := uuid.NewString()
	accountNumber := "0000001000000001"

	suite.mockUsers.On("RoleOf", mock.Anything, staffID).Return(domain.RoleStaff, nil).Once()
	suite.mockLedger.On("Withdraw", mock.Anything, accountNumber, mock.Anything, staffID).
		Return(decimal.Zero, apperrors.ErrInsufficientFunds).Once()

	w := suite.doRequest(http.MethodPut, "/api/v1/accounts/"+accountNumber+"/withdraw", staffID,
		dto.AmountRequest{Amount: decimal.RequireFromString("9999.00")})

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *AccountHandlerTestSuite) TestWithdraw_InactiveAccountMapsTo409() {
	staffID := uuid.NewString()
	accountNumber := "0000001000000001"

	suite.mockUsers.On("RoleOf", mock.Anything, staffID).Return(domain.RoleAdmin, nil).Once()
	suite.mockLedger.On("Withdraw", mock.Anything, accountNumber, mock.Anything, staffID).
		Return(decimal.Zero, apperrors.ErrAccountNotActive).Once()

	w := suite.doRequest(http.MethodPut, "/api/v1/accounts/"+accountNumber+"/withdraw", staffID,
		dto.AmountRequest{Amount: decimal.RequireFromString("1.00")})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AccountHandlerTestSuite) TestTransfer_Success() {
	staffID := uuid.NewString()
	source := "0000001000000001"
	dest := "0000001000000002"

	suite.mockUsers.On("RoleOf", mock.Anything, staffID).Return(domain.RoleStaff, nil).Once()
	suite.mockLedger.On("Transfer", mock.Anything, source, dest,
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.RequireFromString("10.00")) }), staffID).
		Return(nil).Once()

	w := suite.doRequest(http.MethodPut, "/api/v1/accounts/"+source+"/transfer", staffID,
		dto.TransferRequest{Amount: decimal.RequireFromString("10.00"), ReceiverAccountNumber: dest})

	suite.Equal(http.StatusOK, w.Code)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestTransfer_SameAccountMapsTo400() {
	staffID := uuid.NewString()
	source := "0000001000000001"

	suite.mockUsers.On("RoleOf", mock.Anything, staffID).Return(domain.RoleStaff, nil).Once()
	suite.mockLedger.On("Transfer", mock.Anything, source, source, mock.Anything, staffID).
		Return(apperrors.ErrSameAccount).Once()

	w := suite.doRequest(http.MethodPut, "/api/v1/accounts/"+source+"/transfer", staffID,
		dto.TransferRequest{Amount: decimal.RequireFromString("10.00"), ReceiverAccountNumber: source})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	userID := uuid.NewString()

	suite.mockStatement.On("GetAccount", mock.Anything, "0000001000000009").
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/accounts/0000001000000009", userID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestStatement_InvalidDateParam() {
	userID := uuid.NewString()

	w := suite.doRequest(http.MethodGet, "/api/v1/accounts/0000001000000001/statement?start_date=not-a-date", userID, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockStatement.AssertNotCalled(suite.T(), "Statement", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestStatement_PassesParsedDates() {
	userID := uuid.NewString()
	accountNumber := "0000001000000001"

	suite.mockStatement.On("Statement", mock.Anything, accountNumber,
		mock.MatchedBy(func(start *time.Time) bool {
			return start != nil && start.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		}),
		mock.MatchedBy(func(end *time.Time) bool {
			return end != nil && end.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
		})).
		Return([]domain.Transaction{}, nil).Once()

	w := suite.doRequest(http.MethodGet,
		"/api/v1/accounts/"+accountNumber+"/statement?start_date=2024-01-01&end_date=2024-02-01", userID, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockStatement.AssertExpectations(suite.T())
}

func TestAccountHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
