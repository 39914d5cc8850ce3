package account

import "time"

// Customer owns one license. Its ID doubles as the owner's bearer token.
type Customer struct {
	ID           string
	Email        string
	PasswordHash string
	LicenseKey   string
	CreatedAt    time.Time
}
