package handlers

import (
	"context"

	"banking/internal/application/user/dto"
)

// Application service views used by the handlers; *user.Service satisfies all of them.

type identityService interface {
	ValidateIdentity(req dto.ValidateRequest) (*dto.ValidationReport, error)
}

type authService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req dto.LoginRequest, ipAddress string) (*dto.AuthResponse, error)
	VerifyEmail(ctx context.Context, req dto.VerifyEmailRequest) (*dto.UserResponse, error)
	GetUser(ctx context.Context, sid string) (*dto.UserResponse, error)
}

type userAdminService interface {
	GetUser(ctx context.Context, sid string) (*dto.UserResponse, error)
	ListUsers(ctx context.Context, req dto.ListUsersRequest) (*dto.ListUsersResponse, error)
	UpdateUserStatus(ctx context.Context, sid, actorSID string, req dto.UpdateUserStatusRequest) (*dto.UserResponse, error)
}

// DatabasePinger reports database reachability for the health check
type DatabasePinger interface {
	PingContext(ctx context.Context) error
}
