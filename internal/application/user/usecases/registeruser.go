package usecases

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"banking/internal/application/user/helpers"
	"banking/internal/domain/user"
	vo "banking/internal/domain/user/valueobjects"
	"banking/internal/shared/biztime"
	"banking/internal/shared/errors"
	"banking/internal/shared/logger"
)

type RegisterUserCommand struct {
	Email       string
	CPF         string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
	// DateOfBirth is a calendar date in YYYY-MM-DD form; empty when not collected
	DateOfBirth string
	// NonText names identity fields the transport received as non-string
	// values; they fail validation whatever their text looks like
	NonText []string
}

func (c RegisterUserCommand) nonText(field string) bool {
	return slices.Contains(c.NonText, field)
}

// RegisterOptions carries the registration settings taken from configuration
type RegisterOptions struct {
	VerificationTTL time.Duration
	MinimumAge      int
}

type RegisterUserUseCase struct {
	userRepo       user.Repository
	txMgr          TransactionRunner
	passwordHasher user.PasswordHasher
	emailSender    EmailSender
	authHelper     *helpers.AuthHelper
	generateSID    user.ShortIDGenerator
	metrics        MetricsRecorder
	options        RegisterOptions
	logger         logger.Interface
}

func NewRegisterUserUseCase(
	userRepo user.Repository,
	txMgr TransactionRunner,
	hasher user.PasswordHasher,
	emailSender EmailSender,
	authHelper *helpers.AuthHelper,
	generateSID user.ShortIDGenerator,
	metrics MetricsRecorder,
	options RegisterOptions,
	logger logger.Interface,
) *RegisterUserUseCase {
	if options.VerificationTTL <= 0 {
		options.VerificationTTL = 24 * time.Hour
	}
	if txMgr == nil {
		txMgr = noTransaction{}
	}
	return &RegisterUserUseCase{
		userRepo:       userRepo,
		txMgr:          txMgr,
		passwordHasher: hasher,
		emailSender:    emailSender,
		authHelper:     authHelper,
		generateSID:    generateSID,
		metrics:        metricsOrNop(metrics),
		options:        options,
		logger:         logger,
	}
}

// Execute validates every field (the first failure is returned as its typed
// error), rejects duplicates, stores the user and mails the verification token.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, cmd RegisterUserCommand) (*user.User, error) {
	if cmd.nonText(FieldEmail) {
		return nil, uc.invalid(FieldEmail, vo.NewInvalidEmailError(cmd.Email))
	}
	email, err := vo.NewEmail(cmd.Email)
	if err != nil {
		return nil, uc.invalid(FieldEmail, err)
	}

	if cmd.nonText(FieldCPF) {
		return nil, uc.invalid(FieldCPF, vo.NewInvalidCPFError(cmd.CPF))
	}
	cpf, err := vo.NewCPF(cmd.CPF)
	if err != nil {
		return nil, uc.invalid(FieldCPF, err)
	}

	if cmd.nonText(FieldPassword) {
		return nil, uc.invalid(FieldPassword, vo.NewInvalidPasswordError(vo.ReasonPasswordEmpty))
	}
	password, err := vo.NewPassword(cmd.Password)
	if err != nil {
		return nil, uc.invalid(FieldPassword, err)
	}

	firstName, err := vo.NewName(cmd.FirstName)
	if err != nil {
		return nil, uc.invalid(FieldFirstName, err)
	}

	lastName, err := vo.NewName(cmd.LastName)
	if err != nil {
		return nil, uc.invalid(FieldLastName, err)
	}

	profile, err := uc.buildProfile(cmd)
	if err != nil {
		return nil, err
	}

	if err := uc.ensureUnique(ctx, email, cpf); err != nil {
		return nil, err
	}

	newUser, err := user.NewUser(email, cpf, firstName, lastName, profile, uc.generateSID)
	if err != nil {
		uc.logger.Errorw("failed to create user aggregate", "error", err)
		return nil, errors.NewInternalError("failed to create user")
	}

	if err := newUser.SetPassword(password, uc.passwordHasher); err != nil {
		uc.logger.Errorw("failed to set password", "error", err)
		return nil, errors.NewInternalError("failed to create user")
	}

	token, err := newUser.GenerateEmailVerificationToken(uc.options.VerificationTTL)
	if err != nil {
		uc.logger.Errorw("failed to generate verification token", "error", err)
		return nil, errors.NewInternalError("failed to create user")
	}

	// the insert and the bootstrap admin claim commit together
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.userRepo.Create(txCtx, newUser); err != nil {
			return err
		}
		if err := uc.authHelper.GrantAdminIfFirstUser(txCtx, newUser); err != nil {
			uc.logger.Warnw("failed to grant admin role to first user", "error", err, "user_sid", newUser.SID())
		}
		return nil
	})
	if err != nil {
		// a concurrent registration can still win the unique index
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("email or cpf already registered")
		}
		uc.logger.Errorw("failed to create user in database", "error", err)
		return nil, errors.NewInternalError("failed to create user")
	}

	if uc.emailSender != nil {
		if err := uc.emailSender.SendVerificationEmail(ctx, email.String(), newUser.FullName(), token.Value()); err != nil {
			uc.logger.Warnw("failed to send verification email", "error", err, "email", email)
		}
	}

	uc.metrics.UserRegistered()
	uc.logger.Infow("user registered successfully", "user_sid", newUser.SID(), "email", email, "cpf", cpf)

	return newUser, nil
}

func (uc *RegisterUserUseCase) invalid(field string, err error) error {
	errorType := string(errors.ErrorTypeValidation)
	if appErr := errors.GetAppError(err); appErr != nil {
		errorType = string(appErr.Type)
	}
	uc.metrics.ValidationFailed(field, errorType)
	return err
}

func (uc *RegisterUserUseCase) buildProfile(cmd RegisterUserCommand) (user.Profile, error) {
	profile := user.Profile{PhoneNumber: strings.TrimSpace(cmd.PhoneNumber)}

	if cmd.DateOfBirth == "" {
		return profile, nil
	}

	dob, err := biztime.ParseDate(cmd.DateOfBirth)
	if err != nil {
		return profile, errors.NewValidationError("invalid date of birth", "expected YYYY-MM-DD")
	}

	now := biztime.NowUTC()
	if dob.After(now) {
		return profile, errors.NewValidationError("date of birth cannot be in the future")
	}
	if uc.options.MinimumAge > 0 && biztime.AgeOn(dob, now) < uc.options.MinimumAge {
		return profile, errors.NewValidationError(fmt.Sprintf("customer must be at least %d years old", uc.options.MinimumAge))
	}

	profile.DateOfBirth = &dob
	return profile, nil
}

func (uc *RegisterUserUseCase) ensureUnique(ctx context.Context, email *vo.Email, cpf *vo.CPF) error {
	exists, err := uc.userRepo.ExistsByEmail(ctx, email.String())
	if err != nil {
		uc.logger.Errorw("failed to check email existence", "error", err)
		return errors.NewInternalError("failed to check email existence")
	}
	if exists {
		return errors.NewConflictError("email already registered")
	}

	exists, err = uc.userRepo.ExistsByCPF(ctx, cpf.String())
	if err != nil {
		uc.logger.Errorw("failed to check cpf existence", "error", err)
		return errors.NewInternalError("failed to check cpf existence")
	}
	if exists {
		return errors.NewConflictError("cpf already registered")
	}

	return nil
}
