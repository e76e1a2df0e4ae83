package dto

import (
	"time"

	"bankcore/internal/core/domain"
)

// CreateBranchRequest defines the data needed to register a branch.
type CreateBranchRequest struct {
	BranchCode string `json:"branchCode" binding:"required,len=5"`
	Name       string `json:"name" binding:"required"`
}

// BranchResponse defines the data returned for a branch.
type BranchResponse struct {
	BranchCode string    `json:"branchCode"`
	Name       string    `json:"name"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToBranchResponse converts a domain.Branch to BranchResponse
func ToBranchResponse(b *domain.Branch) BranchResponse {
	return BranchResponse{
		BranchCode: b.BranchCode,
		Name:       b.Name,
		IsActive:   b.IsActive,
		CreatedAt:  b.CreatedAt,
	}
}

// ToListBranchResponse converts a slice of domain.Branch to responses
func ToListBranchResponse(branches []domain.Branch) []BranchResponse {
	res := make([]BranchResponse, len(branches))
	for i, b := range branches {
		res[i] = ToBranchResponse(&b)
	}
	return res
}
