package models

// UserRole is the persisted bank-wide role of a user.
type UserRole string

const (
	RoleCustomer UserRole = "CUSTOMER"
	RoleStaff    UserRole = "STAFF"
	RoleAdmin    UserRole = "ADMIN"
)

// User represents a user row.
type User struct {
	UserID       string   `db:"user_id"`
	Username     string   `db:"username"`
	FullName     string   `db:"full_name"`
	PasswordHash string   `db:"password_hash"`
	Role         UserRole `db:"role"`
	AuditFields
}
