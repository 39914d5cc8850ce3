package agent

import (
	"encoding/json"
	"time"
)

// Command types understood by agents. The set is open; dashboards may send
// other types and agents ignore what they do not know.
const (
	CommandKick   = "kick"
	CommandBan    = "ban"
	CommandDM     = "dm"
	CommandFreeze = "freeze"
	CommandUnban  = "unban"
)

// Command lives only in a tenant queue until the agent polls it.
type Command struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// UnbanPayload is pushed to the agent when a ban is lifted.
type UnbanPayload struct {
	BanID       string   `json:"ban_id"`
	PlayerID    string   `json:"player_id"`
	Identifiers []string `json:"identifiers"`
}
