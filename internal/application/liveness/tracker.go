// Package liveness tracks which agents are reporting in.
package liveness

import (
	"context"
	"strings"

	"warden/internal/domain/agent"
	"warden/internal/infrastructure/memstore"
	"warden/internal/infrastructure/mirror"
	"warden/internal/shared/biztime"
	"warden/internal/shared/errors"
	"warden/internal/shared/logger"
)

type tenantState struct {
	record *agent.LivenessRecord
	roster []agent.Player
}

// HeartbeatCommand is one agent report.
type HeartbeatCommand struct {
	LicenseKey    string
	Players       []agent.Player
	Version       string
	UptimeSeconds int64
}

// Tracker keeps the latest heartbeat of every tenant in memory and mirrors
// it to the status table best-effort.
type Tracker struct {
	state  *memstore.Partitioned[tenantState]
	mirror agent.StatusMirror
	writer *mirror.Writer
	now    biztime.Clock
	logger logger.Interface
}

func NewTracker(statusMirror agent.StatusMirror, writer *mirror.Writer, logger logger.Interface) *Tracker {
	return &Tracker{
		state:  memstore.NewPartitioned[tenantState](nil),
		mirror: statusMirror,
		writer: writer,
		now:    biztime.NowUTC,
		logger: logger,
	}
}

// SetClock replaces the time source.
func (t *Tracker) SetClock(c biztime.Clock) {
	t.now = c
}

// Heartbeat replaces the tenant's roster and liveness record. It does not
// look at the license; an agent with a revoked license still shows online.
func (t *Tracker) Heartbeat(ctx context.Context, cmd HeartbeatCommand) (agent.Status, error) {
	key := strings.TrimSpace(cmd.LicenseKey)
	if key == "" {
		return agent.Status{}, errors.NewValidationError(errors.CodeMissingLicense, "license_key is required")
	}

	players := cmd.Players
	if players == nil {
		players = []agent.Player{}
	}
	now := t.now()
	rec := agent.LivenessRecord{
		LastSeenAt:    now,
		PlayerCount:   len(players),
		UptimeSeconds: cmd.UptimeSeconds,
		Version:       cmd.Version,
	}

	t.state.Update(key, func(s *tenantState) {
		r := rec
		s.record = &r
		s.roster = append([]agent.Player(nil), players...)
	})

	t.writer.Write(ctx, "server-status", func(ctx context.Context) error {
		return t.mirror.Upsert(ctx, key, rec, true)
	})

	t.logger.Debugw("heartbeat received",
		"license_key", key,
		"players", rec.PlayerCount,
		"version", rec.Version,
	)
	return rec.StatusAt(now), nil
}

// Status derives the tenant's current status. Unknown tenants are offline
// with zero values.
func (t *Tracker) Status(key string) agent.Status {
	var rec *agent.LivenessRecord
	t.state.View(key, func(s *tenantState) {
		if s.record != nil {
			r := *s.record
			rec = &r
		}
	})
	return rec.StatusAt(t.now())
}

// Roster returns a copy of the last reported player list.
func (t *Tracker) Roster(key string) []agent.Player {
	out := []agent.Player{}
	t.state.View(key, func(s *tenantState) {
		out = append(out, s.roster...)
	})
	return out
}

// OnlineCount reports how many tracked tenants are currently online.
func (t *Tracker) OnlineCount() int {
	now := t.now()
	n := 0
	for _, key := range t.state.Keys() {
		t.state.View(key, func(s *tenantState) {
			if s.record.IsOnline(now) {
				n++
			}
		})
	}
	return n
}
