package models

import (
	"time"

	"warden/internal/shared/constants"
)

// CustomerModel is the GORM model for customers table.
// ID is also the owner's bearer token.
type CustomerModel struct {
	ID           string    `gorm:"primaryKey;type:varchar(64)"`
	Email        string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(64);not null"`
	LicenseKey   string    `gorm:"column:license_key;type:varchar(64);not null;index"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return constants.TableCustomers
}
