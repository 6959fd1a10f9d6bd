package usecases

import (
	"context"

	vo "banking/internal/domain/user/valueobjects"
)

// EmailSender delivers transactional mail
type EmailSender interface {
	SendVerificationEmail(ctx context.Context, to, name, token string) error
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// TokenIssuer issues the access/refresh tokens returned by a successful login
type TokenIssuer interface {
	Generate(userSID string, role vo.Role) (*TokenPair, error)
}

// MetricsRecorder receives business counters; implementations must be safe for concurrent use
type MetricsRecorder interface {
	ValidationFailed(field, errorType string)
	UserRegistered()
	LoginFailed(reason string)
	// SecurityEvent counts refusals that feed brute force detection
	SecurityEvent(eventType string)
}

// Field names used in validation reports and metrics
const (
	FieldEmail     = "email"
	FieldCPF       = "cpf"
	FieldPassword  = "password"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
)

// TransactionRunner runs fn in a database transaction carried by the context it receives
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type noTransaction struct{}

func (noTransaction) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopMetrics struct{}

func (nopMetrics) ValidationFailed(string, string) {}
func (nopMetrics) UserRegistered()                 {}
func (nopMetrics) LoginFailed(string)              {}
func (nopMetrics) SecurityEvent(string)            {}

func metricsOrNop(m MetricsRecorder) MetricsRecorder {
	if m == nil {
		return nopMetrics{}
	}
	return m
}
