package services

import (
	"context"

	"bankcore/internal/core/domain"
	"bankcore/internal/dto"
)

// BranchSvcFacade manages branch reference data. Branch creation is an
// administrative operation.
type BranchSvcFacade interface {
	CreateBranch(ctx context.Context, makerUserID string, req dto.CreateBranchRequest) (*domain.Branch, error)
	GetBranch(ctx context.Context, branchCode string) (*domain.Branch, error)
	ListBranches(ctx context.Context) ([]domain.Branch, error)
}
