package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"bankcore/internal/apperrors"
	portssvc "bankcore/internal/core/ports/services"
	"bankcore/internal/dto"
	"bankcore/internal/middleware"
)

// branchHandler handles HTTP requests for branch reference data.
type branchHandler struct {
	branchService portssvc.BranchSvcFacade
}

// registerBranchRoutes registers routes related to branches.
func registerBranchRoutes(rg *gin.RouterGroup, bs portssvc.BranchSvcFacade) {
	h := &branchHandler{branchService: bs}

	branches := rg.Group("/branches")
	{
		branches.POST("", h.createBranch)
		branches.GET("", h.listBranches)
		branches.GET("/:branchCode", h.getBranch)
	}
}

// createBranch registers a new branch. Admin only.
func (h *branchHandler) createBranch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createBranch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	makerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Maker user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("branch_code", req.BranchCode))
	logger.Info("Received request to create branch")

	branch, err := h.branchService.CreateBranch(c.Request.Context(), makerUserID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			logger.Warn("Branch creation forbidden")
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Admin role required"})
		case errors.Is(err, apperrors.ErrDuplicate):
			logger.Warn("Branch code already exists")
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Branch code already exists"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating branch", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to create branch", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create branch"})
		}
		return
	}

	logger.Info("Branch created successfully")
	c.JSON(http.StatusCreated, dto.ToBranchResponse(branch))
}

// getBranch retrieves a branch by its code.
func (h *branchHandler) getBranch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchCode := c.Param("branchCode")

	branch, err := h.branchService.GetBranch(c.Request.Context(), branchCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Branch not found", slog.String("branch_code", branchCode))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Branch not found"})
			return
		}
		logger.Error("Failed to get branch", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve branch"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBranchResponse(branch))
}

// listBranches returns all registered branches.
func (h *branchHandler) listBranches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	branches, err := h.branchService.ListBranches(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list branches", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list branches"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"branches": dto.ToListBranchResponse(branches)})
}
