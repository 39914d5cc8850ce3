package account

import "time"

// PanelAdmin is a delegate an owner grants dashboard access to. Only the
// digest of its token is stored.
type PanelAdmin struct {
	ID           uint
	LicenseKey   string
	Username     string
	PasswordHash string
	TokenHash    string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
