package models

import (
	"time"

	"gorm.io/datatypes"

	"warden/internal/shared/constants"
)

// ServerLogModel is the GORM model for server_logs table
type ServerLogModel struct {
	ID         uint           `gorm:"primaryKey;autoIncrement"`
	EventID    string         `gorm:"column:event_id;type:varchar(64);not null;uniqueIndex"`
	LicenseKey string         `gorm:"column:license_key;type:varchar(64);not null;index:idx_server_log_license_time"`
	LoggedAt   time.Time      `gorm:"column:logged_at;not null;index:idx_server_log_license_time;index"`
	Level      string         `gorm:"column:level;type:varchar(32)"`
	Type       string         `gorm:"column:type;type:varchar(64)"`
	Title      string         `gorm:"column:title;type:varchar(255)"`
	Message    string         `gorm:"column:message;type:text;not null"`
	Meta       datatypes.JSON `gorm:"column:meta"`
}

// TableName returns the table name for GORM
func (ServerLogModel) TableName() string {
	return constants.TableServerLogs
}
