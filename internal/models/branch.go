package models

import "time"

// Branch represents a branch row. AccountSeq is the branch-scoped counter
// used to allocate account numbers; it is only ever incremented under a
// row lock inside the account-creation transaction.
type Branch struct {
	BranchCode string    `db:"branch_code"`
	Name       string    `db:"name"`
	IsActive   bool      `db:"is_active"`
	AccountSeq int64     `db:"account_seq"`
	CreatedAt  time.Time `db:"created_at"`
}
