package agent

import "time"

// OnlineWindow is how long a heartbeat keeps a tenant online.
const OnlineWindow = 30 * time.Second

// LivenessRecord is replaced wholesale on every heartbeat.
type LivenessRecord struct {
	LastSeenAt    time.Time
	PlayerCount   int
	UptimeSeconds int64
	Version       string
}

// IsOnline reports whether the record was refreshed within OnlineWindow.
func (r *LivenessRecord) IsOnline(now time.Time) bool {
	if r == nil || r.LastSeenAt.IsZero() {
		return false
	}
	return now.Sub(r.LastSeenAt) < OnlineWindow
}

// Status is the derived view served to dashboards.
type Status struct {
	Online   bool       `json:"online"`
	Players  int        `json:"players"`
	Uptime   int64      `json:"uptime"`
	Version  string     `json:"version"`
	LastSeen *time.Time `json:"last_seen,omitempty"`
}

// StatusAt derives the public status of r at now. A nil record yields the
// zeroed offline status.
func (r *LivenessRecord) StatusAt(now time.Time) Status {
	if r == nil {
		return Status{}
	}
	seen := r.LastSeenAt
	return Status{
		Online:   r.IsOnline(now),
		Players:  r.PlayerCount,
		Uptime:   r.UptimeSeconds,
		Version:  r.Version,
		LastSeen: &seen,
	}
}
