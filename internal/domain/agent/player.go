package agent

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Player is one entry of a roster snapshot as reported by the agent.
type Player struct {
	ID          PlayerID `json:"id"`
	Name        string   `json:"name"`
	Ping        int      `json:"ping"`
	Identifiers []string `json:"identifiers,omitempty"`
}

// PlayerID accepts both numeric and string ids from agents and always
// re-encodes as a string.
type PlayerID string

func (p *PlayerID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PlayerID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("player id must be a string or number: %w", err)
	}
	*p = PlayerID(n.String())
	return nil
}

func (p PlayerID) String() string {
	return string(p)
}
