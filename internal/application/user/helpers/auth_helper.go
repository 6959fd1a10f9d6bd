package helpers

import (
	"context"
	"fmt"

	"banking/internal/domain/user"
	vo "banking/internal/domain/user/valueobjects"
	"banking/internal/shared/errors"
	"banking/internal/shared/logger"
)

// AuthHelper provides authentication steps shared by several use cases
type AuthHelper struct {
	userRepo user.Repository
	logger   logger.Interface
}

// NewAuthHelper creates a new AuthHelper instance
func NewAuthHelper(userRepo user.Repository, logger logger.Interface) *AuthHelper {
	return &AuthHelper{userRepo: userRepo, logger: logger}
}

// GrantAdminIfFirstUser bootstraps an empty installation: the first registered
// user becomes admin so the admin endpoints are reachable. ctx must carry the
// registration transaction.
func (h *AuthHelper) GrantAdminIfFirstUser(ctx context.Context, u *user.User) error {
	first, err := h.userRepo.ClaimBootstrapAdmin(ctx)
	if err != nil {
		return fmt.Errorf("failed to claim bootstrap admin: %w", err)
	}
	if !first {
		return nil
	}

	if err := u.AssignRole(vo.RoleAdmin); err != nil {
		return err
	}
	if err := h.userRepo.Update(ctx, u); err != nil {
		return fmt.Errorf("failed to save admin role: %w", err)
	}

	h.logger.Infow("first user granted admin role", "user_sid", u.SID())
	return nil
}

// ValidateUserCanLogin returns the auth error explaining why u may not log in, or nil
func (h *AuthHelper) ValidateUserCanLogin(u *user.User) error {
	if u.IsLocked() {
		return errors.NewAccountLockedError()
	}
	if !u.Status().CanLogin() {
		return errors.NewAccountInactiveError(u.Status().String())
	}
	if !u.HasPassword() {
		return errors.NewInvalidCredentialsError()
	}
	return nil
}

// RecordFailedLoginAndSave counts the failure and persists it. Persistence
// failures are logged, not returned, so the caller still answers with the
// credential error. It reports whether the account is now locked.
func (h *AuthHelper) RecordFailedLoginAndSave(ctx context.Context, u *user.User, policy *user.SecurityPolicy) bool {
	locked := u.RecordLoginFailure(policy)

	if err := h.userRepo.Update(ctx, u); err != nil {
		h.logger.Errorw("failed to save failed login attempt", "error", err, "user_sid", u.SID())
	}

	if locked {
		h.logger.Warnw("account locked after repeated login failures", "user_sid", u.SID(), "locked_until", u.LockedUntil())
	}
	return locked
}
