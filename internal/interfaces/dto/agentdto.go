package dto

import (
	"encoding/json"

	"warden/internal/domain/agent"
)

type HeartbeatRequest struct {
	LicenseKey string         `json:"license_key"`
	Players    []agent.Player `json:"players"`
	Version    string         `json:"version"`
	Uptime     int64          `json:"uptime"`
}

type LogRequest struct {
	LicenseKey string          `json:"license_key"`
	Level      string          `json:"level"`
	Type       string          `json:"type"`
	Title      string          `json:"title"`
	Message    string          `json:"message"`
	Meta       json.RawMessage `json:"meta"`
}

// DashboardActionRequest queues a command for the caller's agent. Token is
// accepted in the body for dashboards that do not send headers.
type DashboardActionRequest struct {
	Token   string          `json:"token"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type PlayersResponse struct {
	Players []agent.Player `json:"players"`
	Count   int            `json:"count"`
}
