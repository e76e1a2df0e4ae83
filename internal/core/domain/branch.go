package domain

import "time"

// BranchCodeLength is the fixed width of a branch code.
const BranchCodeLength = 5

// Branch is the organizational unit accounts are opened under. Its code
// forms the prefix of every account number issued by the branch. Branches
// are created administratively and never deleted.
type Branch struct {
	BranchCode string    `json:"branchCode"` // Unique, fixed-width
	Name       string    `json:"name"`
	IsActive   bool      `json:"isActive"` // Gates new-account association
	CreatedAt  time.Time `json:"createdAt"`
}
