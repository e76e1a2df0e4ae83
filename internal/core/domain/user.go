package domain

// UserRole defines the role a user holds bank-wide. A user has exactly one role.
type UserRole string

const (
	RoleCustomer UserRole = "CUSTOMER"
	RoleStaff    UserRole = "STAFF"
	RoleAdmin    UserRole = "ADMIN"
)

// User represents an identity known to the bank. Customers own accounts;
// staff and admins act as makers of ledger operations.
type User struct {
	UserID       string   `json:"userID"` // Primary key (UUID)
	Username     string   `json:"username"`
	FullName     string   `json:"fullName"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	AuditFields
}

// CanMakeLedgerOps reports whether the role may create, activate, deactivate
// accounts or move money on behalf of customers.
func (r UserRole) CanMakeLedgerOps() bool {
	return r == RoleStaff || r == RoleAdmin
}
