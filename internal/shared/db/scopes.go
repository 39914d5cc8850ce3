package db

import (
	"time"

	"gorm.io/gorm"
)

// ActiveAt keeps rows whose expires_at column is null or after now.
//
// Example usage:
//
//	db.Model(&BanModel{}).Scopes(db.ActiveAt("bans", now)).Count(&n)
func ActiveAt(table string, now time.Time) func(db *gorm.DB) *gorm.DB {
	col := "expires_at"
	if table != "" {
		col = table + ".expires_at"
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("("+col+" IS NULL OR "+col+" > ?)", now)
	}
}

// OlderThan keeps rows whose column is strictly before cutoff.
func OlderThan(column string, cutoff time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" < ?", cutoff)
	}
}
