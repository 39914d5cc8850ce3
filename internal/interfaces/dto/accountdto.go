package dto

import (
	"time"

	"warden/internal/domain/account"
	"warden/internal/domain/agent"
)

type CustomerLoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CreateCustomerRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	LicenseKey string `json:"license_key" validate:"required"`
}

type CustomerResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	LicenseKey string    `json:"license_key"`
	CreatedAt  time.Time `json:"created_at"`
}

func ToCustomerResponse(c *account.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:         c.ID,
		Email:      c.Email,
		LicenseKey: c.LicenseKey,
		CreatedAt:  c.CreatedAt,
	}
}

func ToCustomerResponses(cs []*account.Customer) []*CustomerResponse {
	out := make([]*CustomerResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, ToCustomerResponse(c))
	}
	return out
}

type DashboardResponse struct {
	License       *LicenseResponse `json:"license"`
	Status        agent.Status     `json:"status"`
	ActiveBans    int64            `json:"active_bans"`
	QueuedActions int              `json:"queued_actions"`
	// AgentOutdated is set when the agent reported a version older than
	// the configured latest release.
	AgentOutdated bool `json:"agent_outdated"`
}

type CreatePanelAdminRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6"`
}

type UpdatePanelAdminRequest struct {
	Active   *bool   `json:"active"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

type PanelAdminLoginRequest struct {
	LicenseKey string `json:"license_key"`
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type PanelAdminResponse struct {
	ID         uint      `json:"id"`
	LicenseKey string    `json:"license_key"`
	Username   string    `json:"username"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreatedPanelAdminResponse is the only response carrying the admin token.
type CreatedPanelAdminResponse struct {
	PanelAdminResponse
	Token string `json:"token"`
}

func ToPanelAdminResponse(a *account.PanelAdmin) *PanelAdminResponse {
	return &PanelAdminResponse{
		ID:         a.ID,
		LicenseKey: a.LicenseKey,
		Username:   a.Username,
		Active:     a.Active,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func ToPanelAdminResponses(as []*account.PanelAdmin) []*PanelAdminResponse {
	out := make([]*PanelAdminResponse, 0, len(as))
	for _, a := range as {
		out = append(out, ToPanelAdminResponse(a))
	}
	return out
}

type OperatorLoginRequest struct {
	Password string `json:"password" validate:"required"`
}
