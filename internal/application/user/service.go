package user

import (
	"context"

	"banking/internal/application/user/dto"
	"banking/internal/application/user/helpers"
	"banking/internal/application/user/usecases"
	domainUser "banking/internal/domain/user"
	"banking/internal/shared/logger"
)

// ServiceDeps collects the collaborators shared by the user use cases
type ServiceDeps struct {
	UserRepo       domainUser.Repository
	TxManager      usecases.TransactionRunner
	PasswordHasher domainUser.PasswordHasher
	TokenIssuer    usecases.TokenIssuer
	EmailSender    usecases.EmailSender
	GenerateSID    domainUser.ShortIDGenerator
	SecurityPolicy *domainUser.SecurityPolicy
	Metrics        usecases.MetricsRecorder
	Register       usecases.RegisterOptions
	Logger         logger.Interface
}

// Service is the application service that orchestrates the user use cases
type Service struct {
	validateIdentityUC *usecases.ValidateIdentityUseCase
	registerUserUC     *usecases.RegisterUserUseCase
	loginUC            *usecases.LoginWithPasswordUseCase
	verifyEmailUC      *usecases.VerifyEmailUseCase
	getUserUC          *usecases.GetUserUseCase
	listUsersUC        *usecases.ListUsersUseCase
	updateStatusUC     *usecases.UpdateUserStatusUseCase
	logger             logger.Interface
}

// NewService creates the user application service
func NewService(deps ServiceDeps) *Service {
	authHelper := helpers.NewAuthHelper(deps.UserRepo, deps.Logger)

	return &Service{
		validateIdentityUC: usecases.NewValidateIdentityUseCase(deps.Metrics),
		registerUserUC: usecases.NewRegisterUserUseCase(
			deps.UserRepo,
			deps.TxManager,
			deps.PasswordHasher,
			deps.EmailSender,
			authHelper,
			deps.GenerateSID,
			deps.Metrics,
			deps.Register,
			deps.Logger,
		),
		loginUC: usecases.NewLoginWithPasswordUseCase(
			deps.UserRepo,
			deps.PasswordHasher,
			deps.TokenIssuer,
			authHelper,
			deps.SecurityPolicy,
			deps.Metrics,
			deps.Logger,
		),
		verifyEmailUC:  usecases.NewVerifyEmailUseCase(deps.UserRepo, deps.Logger),
		getUserUC:      usecases.NewGetUserUseCase(deps.UserRepo, deps.Logger),
		listUsersUC:    usecases.NewListUsersUseCase(deps.UserRepo, deps.Logger),
		updateStatusUC: usecases.NewUpdateUserStatusUseCase(deps.UserRepo, deps.Logger),
		logger:         deps.Logger,
	}
}

// ValidateIdentity checks the supplied identity fields without persisting anything
func (s *Service) ValidateIdentity(req dto.ValidateRequest) (*dto.ValidationReport, error) {
	return s.validateIdentityUC.Execute(usecases.ValidateIdentityCommand{
		Email:    req.Email,
		CPF:      req.CPF,
		Password: req.Password,
	})
}

// Register creates a customer account awaiting email verification
func (s *Service) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	u, err := s.registerUserUC.Execute(ctx, usecases.RegisterUserCommand{
		Email:       req.Email,
		CPF:         req.CPF,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		DateOfBirth: req.DateOfBirth,
		NonText:     req.NonTextFields(),
	})
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponse(u), nil
}

// Login authenticates with email and password
func (s *Service) Login(ctx context.Context, req dto.LoginRequest, ipAddress string) (*dto.AuthResponse, error) {
	result, err := s.loginUC.Execute(ctx, usecases.LoginWithPasswordCommand{
		Email:     req.Email,
		Password:  req.Password,
		IPAddress: ipAddress,
	})
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		User:         dto.ToUserResponse(result.User),
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    result.ExpiresIn,
	}, nil
}

// VerifyEmail consumes a verification token
func (s *Service) VerifyEmail(ctx context.Context, req dto.VerifyEmailRequest) (*dto.UserResponse, error) {
	u, err := s.verifyEmailUC.Execute(ctx, usecases.VerifyEmailCommand{Token: req.Token})
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponse(u), nil
}

// GetUser retrieves a user by SID
func (s *Service) GetUser(ctx context.Context, sid string) (*dto.UserResponse, error) {
	return s.getUserUC.ExecuteBySID(ctx, sid)
}

// ListUsers retrieves a paginated list of users
func (s *Service) ListUsers(ctx context.Context, req dto.ListUsersRequest) (*dto.ListUsersResponse, error) {
	return s.listUsersUC.Execute(ctx, req)
}

// UpdateUserStatus changes the status of another user
func (s *Service) UpdateUserStatus(ctx context.Context, sid, actorSID string, req dto.UpdateUserStatusRequest) (*dto.UserResponse, error) {
	return s.updateStatusUC.Execute(ctx, usecases.UpdateUserStatusCommand{
		SID:      sid,
		Status:   req.Status,
		ActorSID: actorSID,
	})
}
