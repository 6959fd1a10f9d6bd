package models

import (
	"time"

	"banking/internal/shared/constants"
)

// BootstrapStateID is the primary key of the single bootstrap row
const BootstrapStateID uint = 1

// BootstrapStateModel is a single-row table locked while the first admin is chosen
type BootstrapStateModel struct {
	ID           uint `gorm:"primarykey"`
	AdminGranted bool `gorm:"not null;default:false"`
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (BootstrapStateModel) TableName() string {
	return constants.TableBootstrapState
}
