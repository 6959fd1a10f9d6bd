package user

import (
	"fmt"
	"time"

	vo "banking/internal/domain/user/valueobjects"
	"banking/internal/shared/biztime"
)

// ShortIDGenerator produces the external, prefixed identifier of a new user
type ShortIDGenerator func() (string, error)

// User represents the user aggregate root (pure domain model without persistence concerns)
type User struct {
	id          uint
	sid         string
	email       *vo.Email
	cpf         *vo.CPF
	firstName   *vo.Name
	lastName    *vo.Name
	role        vo.Role
	status      vo.Status
	phoneNumber string
	dateOfBirth *time.Time
	createdAt   time.Time
	updatedAt   time.Time
	version     int

	passwordHash               string
	emailVerified              bool
	emailVerifiedAt            *time.Time
	emailVerificationToken     *string
	emailVerificationExpiresAt *time.Time
	loginAttempts              int
	lockedUntil                *time.Time
	lastLoginAt                *time.Time
	lastLoginIP                string
}

// Profile holds the optional personal data collected at registration
type Profile struct {
	PhoneNumber string
	DateOfBirth *time.Time
}

// NewUser creates a new user aggregate pending email verification
func NewUser(email *vo.Email, cpf *vo.CPF, firstName, lastName *vo.Name, profile Profile, generateSID ShortIDGenerator) (*User, error) {
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}
	if cpf == nil {
		return nil, fmt.Errorf("cpf is required")
	}
	if firstName == nil || lastName == nil {
		return nil, fmt.Errorf("first and last name are required")
	}

	sid, err := generateSID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate short ID: %w", err)
	}

	now := biztime.NowUTC()
	return &User{
		sid:         sid,
		email:       email,
		cpf:         cpf,
		firstName:   firstName,
		lastName:    lastName,
		role:        vo.RoleUser,
		status:      vo.StatusPendingVerification,
		phoneNumber: profile.PhoneNumber,
		dateOfBirth: profile.DateOfBirth,
		createdAt:   now,
		updatedAt:   now,
		version:     1,
	}, nil
}

// AuthData carries the credential and login state persisted alongside the profile
type AuthData struct {
	PasswordHash               string
	EmailVerified              bool
	EmailVerifiedAt            *time.Time
	EmailVerificationToken     *string
	EmailVerificationExpiresAt *time.Time
	LoginAttempts              int
	LockedUntil                *time.Time
	LastLoginAt                *time.Time
	LastLoginIP                string
}

// ReconstructUser reconstructs a user from persistence
func ReconstructUser(
	id uint, sid string,
	email *vo.Email, cpf *vo.CPF,
	firstName, lastName *vo.Name,
	role vo.Role, status vo.Status,
	profile Profile,
	createdAt, updatedAt time.Time,
	version int,
	authData *AuthData,
) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("user SID is required")
	}
	if email == nil || cpf == nil {
		return nil, fmt.Errorf("email and cpf are required")
	}
	if firstName == nil || lastName == nil {
		return nil, fmt.Errorf("first and last name are required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}

	u := &User{
		id:          id,
		sid:         sid,
		email:       email,
		cpf:         cpf,
		firstName:   firstName,
		lastName:    lastName,
		role:        role,
		status:      status,
		phoneNumber: profile.PhoneNumber,
		dateOfBirth: profile.DateOfBirth,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		version:     version,
	}

	if authData != nil {
		u.passwordHash = authData.PasswordHash
		u.emailVerified = authData.EmailVerified
		u.emailVerifiedAt = authData.EmailVerifiedAt
		u.emailVerificationToken = authData.EmailVerificationToken
		u.emailVerificationExpiresAt = authData.EmailVerificationExpiresAt
		u.loginAttempts = authData.LoginAttempts
		u.lockedUntil = authData.LockedUntil
		u.lastLoginAt = authData.LastLoginAt
		u.lastLoginIP = authData.LastLoginIP
	}

	return u, nil
}

// GetAuthData returns a snapshot of the credential and login state
func (u *User) GetAuthData() *AuthData {
	return &AuthData{
		PasswordHash:               u.passwordHash,
		EmailVerified:              u.emailVerified,
		EmailVerifiedAt:            u.emailVerifiedAt,
		EmailVerificationToken:     u.emailVerificationToken,
		EmailVerificationExpiresAt: u.emailVerificationExpiresAt,
		LoginAttempts:              u.loginAttempts,
		LockedUntil:                u.lockedUntil,
		LastLoginAt:                u.lastLoginAt,
		LastLoginIP:                u.lastLoginIP,
	}
}

func (u *User) ID() uint { return u.id }
func (u *User) SID() string { return u.sid }
func (u *User) Email() *vo.Email { return u.email }
func (u *User) CPF() *vo.CPF { return u.cpf }
func (u *User) FirstName() *vo.Name { return u.firstName }
func (u *User) LastName() *vo.Name { return u.lastName }
func (u *User) Role() vo.Role { return u.role }
func (u *User) Status() vo.Status { return u.status }
func (u *User) PhoneNumber() string { return u.phoneNumber }
func (u *User) DateOfBirth() *time.Time { return u.dateOfBirth }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// Version returns the aggregate version for optimistic locking
func (u *User) Version() int {
	return u.version
}

// FullName returns first and last name in display casing
func (u *User) FullName() string {
	return u.firstName.DisplayName() + " " + u.lastName.DisplayName()
}

// IsAdmin checks if the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.role.IsAdmin()
}

// SetID sets the user ID (only for persistence layer use)
func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

// AssignRole changes the authorization role
func (u *User) AssignRole(role vo.Role) error {
	if !role.IsValid() {
		return fmt.Errorf("invalid role: %s", role)
	}
	if u.role == role {
		return nil
	}
	u.role = role
	u.touch()
	return nil
}

// ChangeStatus moves the account to target if the transition table allows it
func (u *User) ChangeStatus(target vo.Status) error {
	if u.status == target {
		return nil
	}

	next, err := u.status.TransitionTo(target)
	if err != nil {
		return err
	}

	u.status = next
	u.touch()
	return nil
}

func (u *User) touch() {
	u.updatedAt = biztime.NowUTC()
	u.version++
}
