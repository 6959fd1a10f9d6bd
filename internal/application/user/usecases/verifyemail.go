package usecases

import (
	"context"

	"banking/internal/domain/user"
	vo "banking/internal/domain/user/valueobjects"
	"banking/internal/shared/errors"
	"banking/internal/shared/logger"
	"banking/internal/shared/utils/logutil"
)

type VerifyEmailCommand struct {
	Token string
}

type VerifyEmailUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewVerifyEmailUseCase(userRepo user.Repository, logger logger.Interface) *VerifyEmailUseCase {
	return &VerifyEmailUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Execute consumes a verification token and activates the pending account
func (uc *VerifyEmailUseCase) Execute(ctx context.Context, cmd VerifyEmailCommand) (*user.User, error) {
	token, err := vo.ParseToken(cmd.Token)
	if err != nil {
		return nil, errors.NewTokenInvalidError("verification")
	}

	existingUser, err := uc.userRepo.GetByVerificationToken(ctx, token.Hash())
	if err != nil {
		uc.logger.Errorw("failed to get user by verification token", "error", err)
		return nil, errors.NewInternalError("failed to verify email")
	}
	if existingUser == nil {
		uc.logger.Debugw("unknown verification token", "token_prefix", logutil.TokenPrefix(cmd.Token))
		return nil, errors.NewTokenInvalidError("verification")
	}

	if err := existingUser.VerifyEmail(cmd.Token); err != nil {
		uc.logger.Warnw("email verification rejected", "error", err, "user_sid", existingUser.SID())
		return nil, errors.NewTokenExpiredError("verification")
	}

	if err := uc.userRepo.Update(ctx, existingUser); err != nil {
		uc.logger.Errorw("failed to update user", "error", err, "user_sid", existingUser.SID())
		return nil, errors.NewInternalError("failed to verify email")
	}

	uc.logger.Infow("email verified successfully", "user_sid", existingUser.SID())

	return existingUser, nil
}
