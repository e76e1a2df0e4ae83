package services

import (
	"context"
	"log/slog"

	"bankcore/internal/apperrors"
	portssvc "bankcore/internal/core/ports/services"
	"bankcore/internal/middleware"
)

// BaseService provides logging and role-authorization helpers shared by all
// services.
type BaseService struct {
	RoleResolver portssvc.RoleResolverSvc
}

// GetLogger gets the request-scoped logger from context.
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting.
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting.
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting.
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// RequireLedgerMaker resolves the maker's role and returns ErrForbidden
// unless they hold STAFF or ADMIN. Called before any mutation so a denied
// request leaves no side effects.
func (s *BaseService) RequireLedgerMaker(ctx context.Context, makerUserID string) error {
	role, err := s.RoleResolver.RoleOf(ctx, makerUserID)
	if err != nil {
		return err
	}
	if !role.CanMakeLedgerOps() {
		s.LogInfo(ctx, "Maker lacks ledger role", slog.String("maker_user_id", makerUserID), slog.String("role", string(role)))
		return apperrors.ErrForbidden
	}
	return nil
}
