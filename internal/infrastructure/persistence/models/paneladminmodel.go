package models

import (
	"time"

	"warden/internal/shared/constants"
)

// PanelAdminModel is the GORM model for panel_admins table
type PanelAdminModel struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	LicenseKey   string    `gorm:"column:license_key;type:varchar(64);not null;uniqueIndex:idx_panel_admin_license_username"`
	Username     string    `gorm:"column:username;type:varchar(64);not null;uniqueIndex:idx_panel_admin_license_username"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(64);not null"`
	TokenHash    string    `gorm:"column:token_hash;type:varchar(64);index"`
	Active       bool      `gorm:"column:active;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (PanelAdminModel) TableName() string {
	return constants.TablePanelAdmins
}
