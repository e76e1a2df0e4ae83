package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bankcore/internal/apperrors"
	portssvc "bankcore/internal/core/ports/services"
	"bankcore/internal/dto"
	"bankcore/internal/middleware"
)

const statementDateLayout = "2006-01-02"

// statementHandler serves the read-only journal and event projections.
type statementHandler struct {
	statementService portssvc.StatementSvcFacade
}

// registerStatementRoutes attaches the statement and event routes to the
// accounts group.
func registerStatementRoutes(accounts *gin.RouterGroup, ss portssvc.StatementSvcFacade) {
	h := &statementHandler{statementService: ss}

	accounts.GET("/:accountNumber/statement", h.statement)
	accounts.GET("/:accountNumber/events", h.listEvents)
}

// statement returns the account's journal records within the requested
// window. start_date and end_date are optional YYYY-MM-DD query parameters;
// an omitted start defaults to six months back and an omitted end to now.
func (h *statementHandler) statement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber := c.Param("accountNumber")

	start, err := parseDateParam(c.Query("start_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid start_date, expected YYYY-MM-DD"})
		return
	}
	end, err := parseDateParam(c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid end_date, expected YYYY-MM-DD"})
		return
	}

	logger = logger.With(slog.String("account_number", accountNumber))
	logger.Info("Received request for statement")

	transactions, err := h.statementService.Statement(c.Request.Context(), accountNumber, start, end)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Account not found for statement")
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
		case errors.Is(err, apperrors.ErrInvalidRange):
			logger.Warn("Invalid statement range", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to build statement", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve statement"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accountNumber": accountNumber,
		"transactions":  dto.ToListTransactionResponse(transactions),
	})
}

// listEvents returns the lifecycle event trail for an account.
func (h *statementHandler) listEvents(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber := c.Param("accountNumber")

	events, err := h.statementService.ListAccountEvents(c.Request.Context(), accountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Account not found for events", slog.String("account_number", accountNumber))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
			return
		}
		logger.Error("Failed to list account events", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accountNumber": accountNumber,
		"events":        dto.ToListAccountEventResponse(events),
	})
}

// parseDateParam parses an optional YYYY-MM-DD query value. Empty means unset.
func parseDateParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(statementDateLayout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
