package dto

import (
	"encoding/json"
	"time"

	"warden/internal/domain/ban"
)

type CreateBanRequest struct {
	BanID       string     `json:"ban_id"`
	LicenseKey  string     `json:"license_key"`
	PlayerID    string     `json:"player_id"`
	Reason      string     `json:"reason"`
	Duration    string     `json:"duration"`
	ExpiresAt   *time.Time `json:"expires_at"`
	BannedBy    string     `json:"banned_by"`
	EvidenceURL *string    `json:"evidence_url"`
	CreatedAt   *time.Time `json:"created_at"`
	Identifiers []string   `json:"identifiers"`
}

// CheckBanRequest keeps identifiers raw so a non-array value can be
// reported as INVALID_IDENTIFIERS instead of a decode failure.
type CheckBanRequest struct {
	LicenseKey  string          `json:"license_key"`
	Identifiers json.RawMessage `json:"identifiers"`
}

type EvidenceRequest struct {
	LicenseKey string `json:"license_key"`
	BanID      string `json:"ban_id"`
	Image      string `json:"image"`
}

type BanResponse struct {
	BanID       string     `json:"ban_id"`
	LicenseKey  string     `json:"license_key"`
	PlayerID    string     `json:"player_id"`
	Reason      string     `json:"reason"`
	Duration    string     `json:"duration"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   *time.Time `json:"expires_at"`
	BannedBy    string     `json:"banned_by"`
	EvidenceURL *string    `json:"evidence_url"`
	Identifiers []string   `json:"identifiers"`
	Active      bool       `json:"active"`
}

type CheckBanResponse struct {
	Banned bool         `json:"banned"`
	Ban    *BanResponse `json:"ban,omitempty"`
}

func ToBanResponse(b *ban.Ban, now time.Time) *BanResponse {
	if b == nil {
		return nil
	}
	identifiers := b.Identifiers
	if identifiers == nil {
		identifiers = []string{}
	}
	return &BanResponse{
		BanID:       b.BanID,
		LicenseKey:  b.LicenseKey,
		PlayerID:    b.PlayerID,
		Reason:      b.Reason,
		Duration:    b.Duration,
		CreatedAt:   b.CreatedAt,
		ExpiresAt:   b.ExpiresAt,
		BannedBy:    b.BannedBy,
		EvidenceURL: b.EvidenceURL,
		Identifiers: identifiers,
		Active:      b.IsActive(now),
	}
}

func ToBanResponses(bans []*ban.Ban, now time.Time) []*BanResponse {
	out := make([]*BanResponse, 0, len(bans))
	for _, b := range bans {
		out = append(out, ToBanResponse(b, now))
	}
	return out
}
