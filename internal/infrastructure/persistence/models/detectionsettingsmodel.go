package models

import (
	"time"

	"gorm.io/datatypes"

	"warden/internal/shared/constants"
)

// DetectionSettingsModel holds one JSON settings document per license.
type DetectionSettingsModel struct {
	LicenseKey string         `gorm:"primaryKey;column:license_key;type:varchar(64)"`
	Settings   datatypes.JSON `gorm:"column:settings;not null"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (DetectionSettingsModel) TableName() string {
	return constants.TableDetectionSettings
}
