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
	"bankcore/internal/dto"
)

// branchService manages branch reference data.
type branchService struct {
	BaseService
	branchRepo portsrepo.BranchRepository
}

// NewBranchService creates a new branch service.
func NewBranchService(branchRepo portsrepo.BranchRepository, roleResolver portssvc.RoleResolverSvc) portssvc.BranchSvcFacade {
	return &branchService{
		BaseService: BaseService{RoleResolver: roleResolver},
		branchRepo:  branchRepo,
	}
}

var _ portssvc.BranchSvcFacade = (*branchService)(nil)

// CreateBranch registers a new branch. Only admins may do this.
func (s *branchService) CreateBranch(ctx context.Context, makerUserID string, req dto.CreateBranchRequest) (*domain.Branch, error) {
	role, err := s.RoleResolver.RoleOf(ctx, makerUserID)
	if err != nil {
		return nil, err
	}
	if role != domain.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}

	if len(req.BranchCode) != domain.BranchCodeLength {
		return nil, fmt.Errorf("%w: branch code must be %d characters", apperrors.ErrValidation, domain.BranchCodeLength)
	}

	branch := domain.Branch{
		BranchCode: req.BranchCode,
		Name:       req.Name,
		IsActive:   true,
		CreatedAt:  time.Now(),
	}
	if err := s.branchRepo.SaveBranch(ctx, branch); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save branch", slog.String("branch_code", req.BranchCode))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Branch created", slog.String("branch_code", branch.BranchCode))
	return &branch, nil
}

// GetBranch retrieves one branch by code.
func (s *branchService) GetBranch(ctx context.Context, branchCode string) (*domain.Branch, error) {
	branch, err := s.branchRepo.FindBranchByCode(ctx, branchCode)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find branch", slog.String("branch_code", branchCode))
		}
		return nil, err
	}
	return branch, nil
}

// ListBranches retrieves all branches.
func (s *branchService) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	branches, err := s.branchRepo.ListBranches(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list branches")
		return nil, err
	}
	if branches == nil {
		return []domain.Branch{}, nil
	}
	return branches, nil
}
