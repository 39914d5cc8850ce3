package models

import (
	"time"

	"warden/internal/shared/constants"
)

// BanModel is the GORM model for bans table. Rows are never deleted.
type BanModel struct {
	ID          uint                 `gorm:"primaryKey;autoIncrement"`
	BanID       string               `gorm:"column:ban_id;type:varchar(64);not null;uniqueIndex"`
	LicenseKey  string               `gorm:"column:license_key;type:varchar(64);not null;index:idx_ban_license_created"`
	PlayerID    string               `gorm:"column:player_id;type:varchar(128);not null"`
	Reason      string               `gorm:"column:reason;type:text"`
	Duration    string               `gorm:"column:duration;type:varchar(32)"`
	CreatedAt   time.Time            `gorm:"column:created_at;index:idx_ban_license_created"`
	ExpiresAt   *time.Time           `gorm:"column:expires_at;index"`
	BannedBy    string               `gorm:"column:banned_by;type:varchar(128)"`
	EvidenceURL *string              `gorm:"column:evidence_url;type:varchar(1024)"`
	Identifiers []BanIdentifierModel `gorm:"foreignKey:BanID;references:BanID"`
}

// TableName returns the table name for GORM
func (BanModel) TableName() string {
	return constants.TableBans
}

// BanIdentifierModel is the GORM model for ban_identifiers table. One row per
// identifier lets ban checks run as a single indexed join.
type BanIdentifierModel struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	BanID      string `gorm:"column:ban_id;type:varchar(64);not null;uniqueIndex:idx_ban_identifier"`
	LicenseKey string `gorm:"column:license_key;type:varchar(64);not null;index:idx_ban_identifier_lookup"`
	Identifier string `gorm:"column:identifier;type:varchar(255);not null;uniqueIndex:idx_ban_identifier;index:idx_ban_identifier_lookup"`
}

// TableName returns the table name for GORM
func (BanIdentifierModel) TableName() string {
	return constants.TableBanIdentifiers
}
