package usecases

import (
	"context"

	"banking/internal/application/user/dto"
	"banking/internal/domain/user"
	"banking/internal/shared/errors"
	"banking/internal/shared/id"
	"banking/internal/shared/logger"
)

type GetUserUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewGetUserUseCase(userRepo user.Repository, logger logger.Interface) *GetUserUseCase {
	return &GetUserUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

// ExecuteBySID retrieves a user by its external identifier
func (uc *GetUserUseCase) ExecuteBySID(ctx context.Context, sid string) (*dto.UserResponse, error) {
	if !id.IsValidUserSID(sid) {
		return nil, errors.NewNotFoundError("user not found")
	}

	u, err := uc.userRepo.GetBySID(ctx, sid)
	if err != nil {
		uc.logger.Errorw("failed to get user", "error", err, "user_sid", sid)
		return nil, errors.NewInternalError("failed to get user")
	}
	if u == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	return dto.ToUserResponse(u), nil
}
