package user

import (
	"fmt"
	"time"

	vo "banking/internal/domain/user/valueobjects"
	"banking/internal/shared/biztime"
)

// PasswordHasher turns validated passwords into stored hashes; the aggregate never sees an algorithm
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// PasswordRehasher is implemented by hashers whose work factor can be raised
// after hashes were stored
type PasswordRehasher interface {
	NeedsRehash(hash string) bool
}

// SetPassword hashes a policy-validated password and stores the hash
func (u *User) SetPassword(password *vo.Password, hasher PasswordHasher) error {
	if password == nil {
		return fmt.Errorf("password cannot be nil")
	}

	hash, err := hasher.Hash(password.String())
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	u.passwordHash = hash
	u.touch()
	return nil
}

// VerifyPassword checks a plain password against the stored hash.
// It does not change login counters; callers record the outcome explicitly.
func (u *User) VerifyPassword(plainPassword string, hasher PasswordHasher) error {
	if !u.HasPassword() {
		return fmt.Errorf("user has no password set")
	}

	if err := hasher.Verify(plainPassword, u.passwordHash); err != nil {
		return fmt.Errorf("invalid password")
	}
	return nil
}

// UpgradePasswordHash re-hashes a password that was just verified when the
// hasher reports the stored hash as outdated. It reports whether the hash changed.
func (u *User) UpgradePasswordHash(plainPassword string, hasher PasswordHasher) (bool, error) {
	rehasher, ok := hasher.(PasswordRehasher)
	if !ok || !u.HasPassword() || !rehasher.NeedsRehash(u.passwordHash) {
		return false, nil
	}

	hash, err := hasher.Hash(plainPassword)
	if err != nil {
		return false, fmt.Errorf("failed to rehash password: %w", err)
	}

	u.passwordHash = hash
	u.touch()
	return true, nil
}

// HasPassword reports whether a password hash is stored
func (u *User) HasPassword() bool {
	return u.passwordHash != ""
}

// GenerateEmailVerificationToken issues a new token valid for ttl; only its hash is kept
func (u *User) GenerateEmailVerificationToken(ttl time.Duration) (*vo.Token, error) {
	if u.emailVerified {
		return nil, fmt.Errorf("email is already verified")
	}

	token, err := vo.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification token: %w", err)
	}

	hash := token.Hash()
	expiresAt := biztime.NowUTC().Add(ttl)
	u.emailVerificationToken = &hash
	u.emailVerificationExpiresAt = &expiresAt
	u.updatedAt = biztime.NowUTC()

	return token, nil
}

// VerifyEmail consumes the verification token and activates a pending account
func (u *User) VerifyEmail(plainToken string) error {
	if u.emailVerified {
		return fmt.Errorf("email is already verified")
	}

	if u.emailVerificationToken == nil || *u.emailVerificationToken == "" {
		return fmt.Errorf("no verification token found")
	}

	now := biztime.NowUTC()
	if u.emailVerificationExpiresAt == nil || now.After(*u.emailVerificationExpiresAt) {
		return fmt.Errorf("verification token has expired")
	}

	token, err := vo.ParseToken(plainToken)
	if err != nil {
		return fmt.Errorf("invalid token: %w", err)
	}

	if token.Hash() != *u.emailVerificationToken {
		return fmt.Errorf("invalid verification token")
	}

	u.emailVerified = true
	u.emailVerifiedAt = &now
	u.emailVerificationToken = nil
	u.emailVerificationExpiresAt = nil

	if u.status.IsPendingVerification() {
		u.status = vo.StatusActive
	}
	u.touch()

	return nil
}

// IsEmailVerified reports whether the email verification token was consumed
func (u *User) IsEmailVerified() bool {
	return u.emailVerified
}

// RecordLoginFailure increments the failed attempt counter and locks the
// account for lockDuration once maxAttempts is reached. It reports whether
// this failure caused the lock.
func (u *User) RecordLoginFailure(policy *SecurityPolicy) bool {
	if policy == nil {
		policy = DefaultSecurityPolicy()
	}

	now := biztime.NowUTC()
	u.loginAttempts++
	u.updatedAt = now

	if policy.ShouldLock(u.loginAttempts) {
		lockedUntil := policy.LockedUntil(now)
		u.lockedUntil = &lockedUntil
		u.loginAttempts = 0
		return true
	}
	return false
}

// RecordLoginSuccess resets the failure counter and stamps the login
func (u *User) RecordLoginSuccess(ip string) {
	now := biztime.NowUTC()
	u.loginAttempts = 0
	u.lockedUntil = nil
	u.lastLoginAt = &now
	u.lastLoginIP = ip
	u.updatedAt = now
}

// IsLocked reports whether a lockout is in effect
func (u *User) IsLocked() bool {
	if u.lockedUntil == nil {
		return false
	}
	return biztime.NowUTC().Before(*u.lockedUntil)
}

// LockedUntil returns the end of the current lockout, if any
func (u *User) LockedUntil() *time.Time {
	return u.lockedUntil
}

// CanLogin reports whether the account state allows authentication
func (u *User) CanLogin() bool {
	return u.status.CanLogin() && !u.IsLocked() && u.HasPassword()
}
