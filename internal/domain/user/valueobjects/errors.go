package valueobjects

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"banking/internal/shared/errors"
)

// DomainError is the common base of every value object validation failure.
// Concrete failures embed it, so errors.As with *DomainError matches any of them.
type DomainError struct {
	*errors.AppError
}

func newDomainError(errType errors.ErrorType, message string, details ...string) *DomainError {
	return &DomainError{
		AppError: errors.New(errType, http.StatusBadRequest, message, details...),
	}
}

// Error returns the human-readable message without the type prefix
func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap exposes the AppError so transports can map the failure to a status code
func (e *DomainError) Unwrap() error {
	return e.AppError
}

// InvalidEmailError reports an email that failed validation.
type InvalidEmailError struct {
	*DomainError
	// Input is the value as received, before normalization
	Input string
}

func NewInvalidEmailError(input string) *InvalidEmailError {
	return &InvalidEmailError{
		DomainError: newDomainError(errors.ErrorTypeInvalidEmail, fmt.Sprintf("Invalid email format: %s", input)),
		Input:       input,
	}
}

func (e *InvalidEmailError) Unwrap() error { return e.DomainError }

// InvalidCPFError reports a national tax ID (CPF) that failed validation.
type InvalidCPFError struct {
	*DomainError
	Input string
}

func NewInvalidCPFError(input string) *InvalidCPFError {
	return &InvalidCPFError{
		DomainError: newDomainError(errors.ErrorTypeInvalidCPF, fmt.Sprintf("Invalid cpf format: %s", input)),
		Input:       input,
	}
}

func (e *InvalidCPFError) Unwrap() error { return e.DomainError }

// InvalidPasswordError reports the first password policy rule that was violated.
type InvalidPasswordError struct {
	*DomainError
	Reason string
}

func NewInvalidPasswordError(reason string) *InvalidPasswordError {
	return &InvalidPasswordError{
		DomainError: newDomainError(errors.ErrorTypeInvalidPassword, fmt.Sprintf("Invalid password: %s", reason), reason),
		Reason:      reason,
	}
}

func (e *InvalidPasswordError) Unwrap() error { return e.DomainError }

// IsDomainError reports whether err is, or wraps, a value object validation failure.
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return stderrors.As(err, &domainErr)
}
