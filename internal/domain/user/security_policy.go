package user

import "time"

const (
	DefaultMaxLoginAttempts       = 5
	DefaultLockoutDurationMinutes = 15
)

// SecurityPolicy holds the brute-force lockout rules applied at login.
// Zero or negative fields fall back to the defaults.
type SecurityPolicy struct {
	MaxLoginAttempts       int
	LockoutDurationMinutes int
}

func DefaultSecurityPolicy() *SecurityPolicy {
	return &SecurityPolicy{
		MaxLoginAttempts:       DefaultMaxLoginAttempts,
		LockoutDurationMinutes: DefaultLockoutDurationMinutes,
	}
}

// ShouldLock reports whether failedAttempts consecutive failures trigger a lock
func (p *SecurityPolicy) ShouldLock(failedAttempts int) bool {
	limit := p.MaxLoginAttempts
	if limit <= 0 {
		limit = DefaultMaxLoginAttempts
	}
	return failedAttempts >= limit
}

func (p *SecurityPolicy) LockoutDuration() time.Duration {
	minutes := p.LockoutDurationMinutes
	if minutes <= 0 {
		minutes = DefaultLockoutDurationMinutes
	}
	return time.Duration(minutes) * time.Minute
}

// LockedUntil returns when a lock applied at now expires
func (p *SecurityPolicy) LockedUntil(now time.Time) time.Time {
	return now.Add(p.LockoutDuration())
}
