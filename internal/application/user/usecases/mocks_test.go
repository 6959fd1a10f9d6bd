package usecases

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"banking/internal/domain/user"
	vo "banking/internal/domain/user/valueobjects"
	"banking/internal/shared/id"
)

// ============================================================================
// Mock Objects
// ============================================================================

// MockUserRepository is a mock implementation of user.Repository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetBySID(ctx context.Context, sid string) (*user.User, error) {
	args := m.Called(ctx, sid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetByCPF(ctx context.Context, cpf string) (*user.User, error) {
	args := m.Called(ctx, cpf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetByVerificationToken(ctx context.Context, tokenHash string) (*user.User, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByCPF(ctx context.Context, cpf string) (bool, error) {
	args := m.Called(ctx, cpf)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, filter user.ListFilter) ([]*user.User, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*user.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) ClaimBootstrapAdmin(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

// MockEmailSender is a mock implementation of EmailSender
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendVerificationEmail(ctx context.Context, to, name, token string) error {
	args := m.Called(ctx, to, name, token)
	return args.Error(0)
}

// MockTokenIssuer is a mock implementation of TokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Generate(userSID string, role vo.Role) (*TokenPair, error) {
	args := m.Called(userSID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TokenPair), args.Error(1)
}

// prefixHasher "hashes" by prefixing, enough to tell hash from plain text
type prefixHasher struct{}

func (prefixHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (prefixHasher) Verify(password, hash string) error {
	if strings.TrimPrefix(hash, "hashed:") != password {
		return fmt.Errorf("mismatch")
	}
	return nil
}

// recordingMetrics counts the business events a use case reports
type recordingMetrics struct {
	mu               sync.Mutex
	validationFailed []string
	registered       int
	loginFailed      []string
	securityEvents   []string
}

func (r *recordingMetrics) ValidationFailed(field, errorType string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.validationFailed = append(r.validationFailed, field+":"+errorType)
}

func (r *recordingMetrics) UserRegistered() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registered++
}

func (r *recordingMetrics) LoginFailed(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loginFailed = append(r.loginFailed, reason)
}

func (r *recordingMetrics) SecurityEvent(eventType string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.securityEvents = append(r.securityEvents, eventType)
}

// ============================================================================
// Fixtures
// ============================================================================

const (
	testEmail    = "maria.silva@example.com"
	testCPF      = "111.444.777-35"
	testPassword = "Secret#123"
)

func newTestUser(t *testing.T) *user.User {
	t.Helper()

	email, err := vo.NewEmail(testEmail)
	require.NoError(t, err)
	cpf, err := vo.NewCPF(testCPF)
	require.NoError(t, err)
	firstName, err := vo.NewName("Maria")
	require.NoError(t, err)
	lastName, err := vo.NewName("Silva")
	require.NoError(t, err)

	u, err := user.NewUser(email, cpf, firstName, lastName, user.Profile{}, id.NewUserSID)
	require.NoError(t, err)

	password, err := vo.NewPassword(testPassword)
	require.NoError(t, err)
	require.NoError(t, u.SetPassword(password, prefixHasher{}))
	return u
}

func strPtr(s string) *string {
	return &s
}
