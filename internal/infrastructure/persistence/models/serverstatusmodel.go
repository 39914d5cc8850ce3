package models

import (
	"time"

	"warden/internal/shared/constants"
)

// ServerStatusModel mirrors the in-memory liveness record of one tenant.
type ServerStatusModel struct {
	LicenseKey    string    `gorm:"primaryKey;column:license_key;type:varchar(64)"`
	Online        bool      `gorm:"column:online;not null;default:false"`
	PlayerCount   int       `gorm:"column:player_count;not null;default:0"`
	UptimeSeconds int64     `gorm:"column:uptime_seconds;not null;default:0"`
	Version       string    `gorm:"column:version;type:varchar(64)"`
	LastSeen      time.Time `gorm:"column:last_seen;index"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (ServerStatusModel) TableName() string {
	return constants.TableServerStatus
}
