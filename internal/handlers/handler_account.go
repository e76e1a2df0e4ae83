package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"bankcore/internal/apperrors"
	"bankcore/internal/core/domain"
	portssvc "bankcore/internal/core/ports/services"
	"bankcore/internal/dto"
	"bankcore/internal/middleware"
)

// accountHandler handles HTTP requests for account lifecycle and money
// movement.
type accountHandler struct {
	ledgerService    portssvc.LedgerSvcFacade
	statementService portssvc.StatementSvcFacade
	userService      portssvc.UserSvcFacade
}

func newAccountHandler(ls portssvc.LedgerSvcFacade, ss portssvc.StatementSvcFacade, us portssvc.UserSvcFacade) *accountHandler {
	return &accountHandler{
		ledgerService:    ls,
		statementService: ss,
		userService:      us,
	}
}

// RegisterAccountRoutes registers routes related to accounts.
func RegisterAccountRoutes(rg *gin.RouterGroup, ls portssvc.LedgerSvcFacade, ss portssvc.StatementSvcFacade, us portssvc.UserSvcFacade) {
	h := newAccountHandler(ls, ss, us)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listMyAccounts)
		accounts.GET("/:accountNumber", h.getAccount)
		accounts.PUT("/:accountNumber/activate", h.activateAccount)
		accounts.PUT("/:accountNumber/deactivate", h.deactivateAccount)
		accounts.PUT("/:accountNumber/deposit", h.deposit)
		accounts.PUT("/:accountNumber/withdraw", h.withdraw)
		accounts.PUT("/:accountNumber/transfer", h.transfer)
	}
	registerStatementRoutes(accounts, ss)
}

// requireLedgerMaker resolves the role of the logged-in user and rejects
// anyone who may not move customer money. Returns the maker user ID on
// success, or responds and returns false.
func (h *accountHandler) requireLedgerMaker(c *gin.Context) (string, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	makerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", false
	}

	role, err := h.userService.RoleOf(c.Request.Context(), makerUserID)
	if err != nil {
		logger.Error("Failed to resolve maker role", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to authorize request"})
		return "", false
	}
	if !role.CanMakeLedgerOps() {
		logger.Warn("User lacks permission for ledger operation", slog.String("role", string(role)))
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Staff or admin role required"})
		return "", false
	}
	return makerUserID, true
}

// respondLedgerError maps the ledger error taxonomy onto HTTP statuses.
func respondLedgerError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Ledger operation forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Account not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrAccountNotActive):
		logger.Warn("Account not active", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		logger.Warn("Insufficient funds", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate record", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrInvalidAmount),
		errors.Is(err, apperrors.ErrSameAccount),
		errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidState):
		logger.Warn("Invalid ledger request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}

// createAccount opens a new account for the customer named in the request.
// The account starts in WAIT status and must be activated before money moves.
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	makerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Maker user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	owner, err := h.userService.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Owner username not found", slog.String("username", req.Username))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Owner username not found"})
			return
		}
		logger.Error("Failed to resolve owner username", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create account"})
		return
	}

	logger = logger.With(slog.String("owner_user_id", owner.UserID), slog.String("branch_code", req.BranchCode))
	logger.Info("Received request to create account")

	account, err := h.ledgerService.CreateAccount(
		c.Request.Context(),
		makerUserID,
		owner.UserID,
		req.BranchCode,
		domain.AccountType(req.AccountType),
		req.InitialBalance,
	)
	if err != nil {
		respondLedgerError(c, logger, err, "Failed to create account")
		return
	}

	logger.Info("Account created successfully", slog.String("account_number", account.AccountNumber))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount retrieves a single account by its number.
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber := c.Param("accountNumber")

	account, err := h.statementService.GetAccount(c.Request.Context(), accountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Account not found", slog.String("account_number", accountNumber))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
			return
		}
		logger.Error("Failed to get account", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve account"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listMyAccounts lists the accounts owned by the logged-in user.
func (h *accountHandler) listMyAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	accounts, err := h.statementService.ListAccountsByOwner(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list accounts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accounts": dto.ToListAccountResponse(accounts)})
}

// activateAccount moves a WAIT or INACTIVE account to ACTIVE. Activating an
// already active account reports changed=false instead of failing.
func (h *accountHandler) activateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber := c.Param("accountNumber")

	makerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Maker user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("account_number", accountNumber))
	logger.Info("Received request to activate account")

	outcome, err := h.ledgerService.Activate(c.Request.Context(), accountNumber, makerUserID)
	if err != nil {
		respondLedgerError(c, logger, err, "Failed to activate account")
		return
	}

	c.JSON(http.StatusOK, dto.StatusChangeResponse{
		AccountNumber: accountNumber,
		Status:        string(domain.StatusActive),
		Changed:       outcome == portssvc.OutcomeChanged,
	})
}

// deactivateAccount moves an ACTIVE account to INACTIVE.
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber := c.Param("accountNumber")

	makerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Maker user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("account_number", accountNumber))
	logger.Info("Received request to deactivate account")

	outcome, err := h.ledgerService.Deactivate(c.Request.Context(), accountNumber, makerUserID)
	if err != nil {
		respondLedgerError(c, logger, err, "Failed to deactivate account")
		return
	}

	c.JSON(http.StatusOK, dto.StatusChangeResponse{
		AccountNumber: accountNumber,
		Status:        string(domain.StatusInactive),
		Changed:       outcome == portssvc.OutcomeChanged,
	})
}

// deposit credits the account and returns the new balance.
func (h *accountHandler) deposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber := c.Param("accountNumber")

	makerUserID, ok := h.requireLedgerMaker(c)
	if !ok {
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for deposit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("account_number", accountNumber))
	logger.Info("Received request to deposit", slog.String("amount", req.Amount.String()))

	balance, err := h.ledgerService.Deposit(c.Request.Context(), accountNumber, req.Amount, makerUserID)
	if err != nil {
		respondLedgerError(c, logger, err, "Failed to deposit")
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{AccountNumber: accountNumber, Balance: balance})
}

// withdraw debits the account and returns the new balance.
func (h *accountHandler) withdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber := c.Param("accountNumber")

	makerUserID, ok := h.requireLedgerMaker(c)
	if !ok {
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for withdraw", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("account_number", accountNumber))
	logger.Info("Received request to withdraw", slog.String("amount", req.Amount.String()))

	balance, err := h.ledgerService.Withdraw(c.Request.Context(), accountNumber, req.Amount, makerUserID)
	if err != nil {
		respondLedgerError(c, logger, err, "Failed to withdraw")
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{AccountNumber: accountNumber, Balance: balance})
}

// transfer moves money from the account in the path to the receiver named in
// the body. Both legs commit atomically or not at all.
func (h *accountHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber := c.Param("accountNumber")

	makerUserID, ok := h.requireLedgerMaker(c)
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(
		slog.String("source_account", accountNumber),
		slog.String("receiver_account", req.ReceiverAccountNumber),
	)
	logger.Info("Received request to transfer", slog.String("amount", req.Amount.String()))

	err := h.ledgerService.Transfer(c.Request.Context(), accountNumber, req.ReceiverAccountNumber, req.Amount, makerUserID)
	if err != nil {
		respondLedgerError(c, logger, err, "Failed to transfer")
		return
	}

	logger.Info("Transfer completed")
	c.JSON(http.StatusOK, gin.H{"message": "Complete Transfer"})
}
