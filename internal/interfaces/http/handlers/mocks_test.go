package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"banking/internal/application/user/dto"
)

// mockUserService implements every service view used by the handlers
type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) ValidateIdentity(req dto.ValidateRequest) (*dto.ValidationReport, error) {
	args := m.Called(req)
	report, _ := args.Get(0).(*dto.ValidationReport)
	return report, args.Error(1)
}

func (m *mockUserService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.UserResponse)
	return resp, args.Error(1)
}

func (m *mockUserService) Login(ctx context.Context, req dto.LoginRequest, ipAddress string) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req, ipAddress)
	resp, _ := args.Get(0).(*dto.AuthResponse)
	return resp, args.Error(1)
}

func (m *mockUserService) VerifyEmail(ctx context.Context, req dto.VerifyEmailRequest) (*dto.UserResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.UserResponse)
	return resp, args.Error(1)
}

func (m *mockUserService) GetUser(ctx context.Context, sid string) (*dto.UserResponse, error) {
	args := m.Called(ctx, sid)
	resp, _ := args.Get(0).(*dto.UserResponse)
	return resp, args.Error(1)
}

func (m *mockUserService) ListUsers(ctx context.Context, req dto.ListUsersRequest) (*dto.ListUsersResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.ListUsersResponse)
	return resp, args.Error(1)
}

func (m *mockUserService) UpdateUserStatus(ctx context.Context, sid, actorSID string, req dto.UpdateUserStatusRequest) (*dto.UserResponse, error) {
	args := m.Called(ctx, sid, actorSID, req)
	resp, _ := args.Get(0).(*dto.UserResponse)
	return resp, args.Error(1)
}

const (
	testUserSID  = "usr_abcdefghij12"
	testAdminSID = "usr_adminadmin01"
)

func sampleUser() *dto.UserResponse {
	return &dto.UserResponse{
		SID:       testUserSID,
		Email:     "maria.silva@example.com",
		CPF:       "***.444.777-**",
		FirstName: "Maria",
		LastName:  "Silva",
		FullName:  "Maria Silva",
		Role:      "user",
		Status:    "pending_verification",
	}
}
