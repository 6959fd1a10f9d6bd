package valueobjects

import (
	"fmt"
	"strings"

	"banking/internal/shared/errors"
)

// Status represents the lifecycle state of a user account
type Status string

const (
	StatusPendingVerification Status = "pending_verification"
	StatusActive              Status = "active"
	StatusInactive            Status = "inactive"
	StatusSuspended           Status = "suspended"
)

// StatusTransitions defines allowed status transitions
var StatusTransitions = map[Status][]Status{
	StatusPendingVerification: {
		StatusActive,
		StatusInactive,
	},
	StatusActive: {
		StatusInactive,
		StatusSuspended,
	},
	StatusInactive: {
		StatusActive,
	},
	StatusSuspended: {
		StatusActive,
		StatusInactive,
	},
}

// ParseStatus parses a string to Status (case-insensitive).
// The empty string yields StatusPendingVerification, the state of new accounts.
func ParseStatus(value string) (Status, error) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return StatusPendingVerification, nil
	}

	if _, ok := StatusTransitions[normalized]; !ok {
		return "", errors.NewValidationError("invalid status", value)
	}

	return normalized, nil
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// IsValid reports whether s is one of the known statuses
func (s Status) IsValid() bool {
	_, ok := StatusTransitions[s]
	return ok
}

// IsActive checks if the status is active
func (s Status) IsActive() bool {
	return s == StatusActive
}

// IsPendingVerification checks if the account still awaits email verification
func (s Status) IsPendingVerification() bool {
	return s == StatusPendingVerification
}

// CanLogin reports whether a user in this status may authenticate.
// Pending accounts may log in but are limited by the handlers that require verification.
func (s Status) CanLogin() bool {
	return s == StatusActive || s == StatusPendingVerification
}

// CanTransitionTo checks if the current status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range StatusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo returns the target status if the transition is allowed
func (s Status) TransitionTo(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return s, errors.NewValidationError(fmt.Sprintf("cannot transition from %s to %s", s, target))
	}
	return target, nil
}
