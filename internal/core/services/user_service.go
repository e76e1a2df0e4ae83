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
	"bankcore/internal/utils"
	"github.com/google/uuid"
)

// userService manages identities and implements the RoleOf capability the
// ledger relies on for authorization.
type userService struct {
	BaseService
	userRepo portsrepo.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepository) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)
var _ portssvc.RoleResolverSvc = (*userService)(nil)

// RoleOf resolves a user ID to their bank-wide role.
func (s *userService) RoleOf(ctx context.Context, userID string) (domain.UserRole, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

// CreateUser registers a new user. Only admins may create users.
func (s *userService) CreateUser(ctx context.Context, makerUserID string, req dto.CreateUserRequest) (*domain.User, error) {
	maker, err := s.userRepo.FindUserByID(ctx, makerUserID)
	if err != nil {
		return nil, err
	}
	if maker.Role != domain.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		FullName:     req.FullName,
		PasswordHash: hash,
		Role:         domain.UserRole(req.Role),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     makerUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: makerUserID,
		},
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save user", slog.String("username", req.Username))
		}
		return nil, err
	}

	s.LogInfo(ctx, "User created", slog.String("user_id", user.UserID), slog.String("role", req.Role))
	return &user, nil
}

// GetUserByID retrieves one user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

// GetUserByUsername retrieves one user by username.
func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by username")
		}
		return nil, err
	}
	return user, nil
}

// AuthenticateUser verifies the credentials and returns the user on success.
// A wrong password and an unknown username both yield ErrForbidden so the
// login response does not leak which usernames exist.
func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
	}
	return user, nil
}

// EnsureAdminUser creates the bootstrap admin when it does not exist yet.
func (s *userService) EnsureAdminUser(ctx context.Context, username, password string) error {
	_, err := s.userRepo.FindUserByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash bootstrap admin password: %w", err)
	}

	now := time.Now()
	admin := domain.User{
		UserID:       uuid.NewString(),
		Username:     username,
		FullName:     "Bootstrap Administrator",
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "SYSTEM",
			LastUpdatedAt: now,
			LastUpdatedBy: "SYSTEM",
		},
	}
	if err := s.userRepo.SaveUser(ctx, admin); err != nil {
		// Another instance may have created it concurrently.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil
		}
		return err
	}

	s.LogInfo(ctx, "Bootstrap admin created", slog.String("username", username))
	return nil
}
