package repositories

import (
	"context"

	"bankcore/internal/core/domain"
)

// UserRepository persists users of the bank (customers, staff, admins).
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}
