package models

import (
	"time"

	"warden/internal/shared/constants"
)

// LicenseModel is the GORM model for licenses table
type LicenseModel struct {
	ID         uint       `gorm:"primaryKey;autoIncrement"`
	LicenseKey string     `gorm:"column:license_key;type:varchar(64);not null;uniqueIndex"`
	Status     string     `gorm:"column:status;type:varchar(64);not null;default:'ACTIVE'"`
	ExpiresAt  *time.Time `gorm:"column:expires_at"`
	HWID       *string    `gorm:"column:hwid;type:varchar(255)"`
	LastSeen   *time.Time `gorm:"column:last_seen"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (LicenseModel) TableName() string {
	return constants.TableLicenses
}
