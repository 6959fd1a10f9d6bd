package usecases

import (
	"context"

	"banking/internal/application/user/helpers"
	"banking/internal/domain/user"
	vo "banking/internal/domain/user/valueobjects"
	"banking/internal/shared/errors"
	"banking/internal/shared/logger"
)

type LoginWithPasswordCommand struct {
	Email     string
	Password  string
	IPAddress string
}

type LoginWithPasswordResult struct {
	User         *user.User
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

type LoginWithPasswordUseCase struct {
	userRepo       user.Repository
	passwordHasher user.PasswordHasher
	tokenIssuer    TokenIssuer
	authHelper     *helpers.AuthHelper
	securityPolicy *user.SecurityPolicy
	metrics        MetricsRecorder
	logger         logger.Interface
}

func NewLoginWithPasswordUseCase(
	userRepo user.Repository,
	hasher user.PasswordHasher,
	tokenIssuer TokenIssuer,
	authHelper *helpers.AuthHelper,
	securityPolicy *user.SecurityPolicy,
	metrics MetricsRecorder,
	logger logger.Interface,
) *LoginWithPasswordUseCase {
	if securityPolicy == nil {
		securityPolicy = user.DefaultSecurityPolicy()
	}
	return &LoginWithPasswordUseCase{
		userRepo:       userRepo,
		passwordHasher: hasher,
		tokenIssuer:    tokenIssuer,
		authHelper:     authHelper,
		securityPolicy: securityPolicy,
		metrics:        metricsOrNop(metrics),
		logger:         logger,
	}
}

// Execute authenticates by email and password. Unknown emails and wrong
// passwords produce the same error so callers cannot enumerate accounts.
func (uc *LoginWithPasswordUseCase) Execute(ctx context.Context, cmd LoginWithPasswordCommand) (*LoginWithPasswordResult, error) {
	email, err := vo.NewEmail(cmd.Email)
	if err != nil {
		return nil, uc.reject(errors.NewInvalidCredentialsError(), cmd)
	}

	existingUser, err := uc.userRepo.GetByEmail(ctx, email.String())
	if err != nil {
		uc.logger.Errorw("failed to get user by email", "error", err)
		return nil, errors.NewInternalError("failed to authenticate")
	}
	if existingUser == nil {
		return nil, uc.reject(errors.NewInvalidCredentialsError(), cmd)
	}

	if err := uc.authHelper.ValidateUserCanLogin(existingUser); err != nil {
		return nil, uc.reject(err, cmd)
	}

	if err := existingUser.VerifyPassword(cmd.Password, uc.passwordHasher); err != nil {
		locked := uc.authHelper.RecordFailedLoginAndSave(ctx, existingUser, uc.securityPolicy)
		if locked {
			return nil, uc.reject(errors.NewAccountLockedError(), cmd)
		}
		return nil, uc.reject(errors.NewInvalidCredentialsError(), cmd)
	}

	tokens, err := uc.tokenIssuer.Generate(existingUser.SID(), existingUser.Role())
	if err != nil {
		uc.logger.Errorw("failed to issue tokens", "error", err, "user_sid", existingUser.SID())
		return nil, errors.NewInternalError("failed to authenticate")
	}

	if upgraded, err := existingUser.UpgradePasswordHash(cmd.Password, uc.passwordHasher); err != nil {
		uc.logger.Warnw("failed to upgrade password hash", "error", err, "user_sid", existingUser.SID())
	} else if upgraded {
		uc.logger.Infow("password hash upgraded", "user_sid", existingUser.SID())
	}

	existingUser.RecordLoginSuccess(cmd.IPAddress)
	if err := uc.userRepo.Update(ctx, existingUser); err != nil {
		uc.logger.Warnw("failed to save successful login", "error", err, "user_sid", existingUser.SID())
	}

	uc.logger.Infow("user logged in successfully", "user_sid", existingUser.SID(), "ip", cmd.IPAddress)

	return &LoginWithPasswordResult{
		User:         existingUser,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
	}, nil
}

// reject counts a refused login under its error type. The auth error decides
// whether the refusal is logged and whether it is a security event.
func (uc *LoginWithPasswordUseCase) reject(err error, cmd LoginWithPasswordCommand) error {
	reason := string(errors.ErrorTypeInternal)
	if appErr := errors.GetAppError(err); appErr != nil {
		reason = string(appErr.Type)
	}

	uc.metrics.LoginFailed(reason)
	if errors.IsSecurityEvent(err) {
		uc.metrics.SecurityEvent(reason)
	}
	if errors.ShouldLogAuthError(err) {
		uc.logger.Warnw("login rejected", "reason", reason, "ip", cmd.IPAddress)
	}
	return err
}
