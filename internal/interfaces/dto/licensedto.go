package dto

import (
	"encoding/json"
	"time"

	"warden/internal/domain/license"
)

type VerifyLicenseRequest struct {
	LicenseKey string `json:"license_key"`
	HWID       string `json:"hwid"`
}

// VerifyLicenseResponse uses "valid" in place of the usual "success".
// Assertion carries the exact bytes the signature covers.
type VerifyLicenseResponse struct {
	Valid     bool            `json:"valid"`
	Error     string          `json:"error,omitempty"`
	Reason    string          `json:"reason,omitempty"`
	Message   string          `json:"message,omitempty"`
	Assertion json.RawMessage `json:"assertion,omitempty"`
	Signature string          `json:"signature,omitempty"`
}

type IssueLicenseRequest struct {
	DaysValid int `json:"days_valid" validate:"gte=0"`
}

// UpdateLicenseRequest is a partial update from the operator console.
// An explicit "expires_at": null makes the license permanent.
type UpdateLicenseRequest struct {
	Status    *string         `json:"status" validate:"omitempty,min=1,max=64"`
	ExpiresAt json.RawMessage `json:"expires_at"`
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required,max=64"`
}

type LicenseResponse struct {
	LicenseKey string     `json:"license_key"`
	Status     string     `json:"status"`
	ExpiresAt  *time.Time `json:"expires_at"`
	HWID       *string    `json:"hwid"`
	LastSeen   *time.Time `json:"last_seen"`
	CreatedAt  time.Time  `json:"created_at"`
}

func ToLicenseResponse(l *license.License) *LicenseResponse {
	if l == nil {
		return nil
	}
	return &LicenseResponse{
		LicenseKey: l.LicenseKey,
		Status:     l.Status,
		ExpiresAt:  l.ExpiresAt,
		HWID:       l.HWID,
		LastSeen:   l.LastSeen,
		CreatedAt:  l.CreatedAt,
	}
}

func ToLicenseResponses(ls []*license.License) []*LicenseResponse {
	out := make([]*LicenseResponse, 0, len(ls))
	for _, l := range ls {
		out = append(out, ToLicenseResponse(l))
	}
	return out
}
