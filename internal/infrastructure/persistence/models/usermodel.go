package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	vo "banking/internal/domain/user/valueobjects"
	"banking/internal/shared/constants"
)

// UserModel represents the database persistence model for users
// This is the anti-corruption layer between domain and database
type UserModel struct {
	ID  uint   `gorm:"primarykey"`
	SID string `gorm:"uniqueIndex;not null;size:50"`
	// Email and CPF re-validate on Scan, so a corrupted row fails to load
	// instead of producing an invalid aggregate.
	Email                      vo.Email        `gorm:"uniqueIndex;not null;size:254"`
	CPF                        vo.CPF          `gorm:"column:cpf;uniqueIndex;not null;size:11"`
	FirstName                  string          `gorm:"not null;size:100"`
	LastName                   string          `gorm:"not null;size:100"`
	PhoneNumber                string          `gorm:"size:20"`
	DateOfBirth                *datatypes.Date `gorm:"type:date"`
	Role                       string          `gorm:"not null;default:user;size:20"`
	Status                     string          `gorm:"not null;default:pending_verification;size:30;index"`
	Version                    int             `gorm:"not null;default:1"`
	PasswordHash               string          `gorm:"size:255"`
	EmailVerified              bool            `gorm:"default:false"`
	EmailVerifiedAt            *time.Time
	EmailVerificationToken     *string `gorm:"size:64;index:idx_email_verification_token"`
	EmailVerificationExpiresAt *time.Time
	LoginAttempts              int `gorm:"default:0"`
	LockedUntil                *time.Time
	LastLoginAt                *time.Time
	LastLoginIP                string `gorm:"column:last_login_ip;size:45"`
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return constants.TableUsers
}

// BeforeCreate hook for GORM
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.Status == "" {
		u.Status = vo.StatusPendingVerification.String()
	}
	if u.Role == "" {
		u.Role = vo.RoleUser.String()
	}
	if u.Version == 0 {
		u.Version = 1
	}
	return nil
}
