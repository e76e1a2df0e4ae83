package services

import (
	"context"

	"bankcore/internal/core/domain"
	"bankcore/internal/dto"
)

// UserSvcFacade manages identities and answers role lookups for the ledger.
type UserSvcFacade interface {
	RoleResolverSvc
	CreateUser(ctx context.Context, makerUserID string, req dto.CreateUserRequest) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	// AuthenticateUser verifies the password and returns the user on success.
	AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error)
	// EnsureAdminUser creates the bootstrap admin when it does not exist yet.
	// Without it a fresh deployment would have no identity able to create
	// staff users or branches.
	EnsureAdminUser(ctx context.Context, username, password string) error
}
