package usecases

import (
	"context"

	"banking/internal/application/user/dto"
	"banking/internal/domain/user"
	vo "banking/internal/domain/user/valueobjects"
	"banking/internal/shared/errors"
	"banking/internal/shared/logger"
)

type UpdateUserStatusCommand struct {
	SID      string
	Status   string
	ActorSID string
}

type UpdateUserStatusUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewUpdateUserStatusUseCase(userRepo user.Repository, logger logger.Interface) *UpdateUserStatusUseCase {
	return &UpdateUserStatusUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Execute applies an administrative status change. Admins cannot change their own status.
func (uc *UpdateUserStatusUseCase) Execute(ctx context.Context, cmd UpdateUserStatusCommand) (*dto.UserResponse, error) {
	target, err := vo.ParseStatus(cmd.Status)
	if err != nil || cmd.Status == "" {
		return nil, errors.NewValidationError("invalid status", cmd.Status)
	}

	if cmd.SID == cmd.ActorSID {
		return nil, errors.NewForbiddenError("cannot change your own status")
	}

	existingUser, err := uc.userRepo.GetBySID(ctx, cmd.SID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "error", err, "user_sid", cmd.SID)
		return nil, errors.NewInternalError("failed to update user status")
	}
	if existingUser == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	previous := existingUser.Status()
	if err := existingUser.ChangeStatus(target); err != nil {
		return nil, err
	}

	if err := uc.userRepo.Update(ctx, existingUser); err != nil {
		uc.logger.Errorw("failed to update user", "error", err, "user_sid", cmd.SID)
		return nil, errors.NewInternalError("failed to update user status")
	}

	uc.logger.Infow("user status changed",
		"user_sid", cmd.SID,
		"actor_sid", cmd.ActorSID,
		"from", previous,
		"to", target,
	)

	return dto.ToUserResponse(existingUser), nil
}
