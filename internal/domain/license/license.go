package license

import (
	"strings"
	"time"
)

// Status values the service itself writes. Stored status is free text and
// anything other than StatusActive makes a license unusable.
const (
	StatusActive    = "ACTIVE"
	StatusSuspended = "SUSPENDED"
)

// Rejection reasons returned by Check besides the raw status string.
const (
	ReasonExpired      = "EXPIRED"
	ReasonHWIDMismatch = "HWID_MISMATCH"
)

type License struct {
	LicenseKey string
	Status     string
	ExpiresAt  *time.Time
	HWID       *string
	LastSeen   *time.Time
	CreatedAt  time.Time
}

// IsPermanent reports whether the license never expires.
func (l *License) IsPermanent() bool {
	return l.ExpiresAt == nil
}

// IsExpired reports whether the expiry lies at or before now.
func (l *License) IsExpired(now time.Time) bool {
	return l.ExpiresAt != nil && !l.ExpiresAt.After(now)
}

// BoundHWID returns the bound device fingerprint, or "" when unbound.
func (l *License) BoundHWID() string {
	if l.HWID == nil {
		return ""
	}
	return *l.HWID
}

// Check returns "" when the license may be used from hwid at now, otherwise
// the rejection reason: the stored status verbatim, EXPIRED or HWID_MISMATCH,
// in that order. An empty hwid never conflicts.
func (l *License) Check(now time.Time, hwid string) string {
	if l.Status != StatusActive {
		return l.Status
	}
	if l.IsExpired(now) {
		return ReasonExpired
	}
	if bound := l.BoundHWID(); bound != "" && hwid != "" && bound != hwid {
		return ReasonHWIDMismatch
	}
	return ""
}

// NeedsBinding reports whether hwid should be bound on this verification.
func (l *License) NeedsBinding(hwid string) bool {
	return l.BoundHWID() == "" && strings.TrimSpace(hwid) != ""
}

// ExpiryFromDays computes an absolute expiry; daysValid <= 0 means permanent.
func ExpiryFromDays(now time.Time, daysValid int) *time.Time {
	if daysValid <= 0 {
		return nil
	}
	expires := now.AddDate(0, 0, daysValid)
	return &expires
}
