// Package command relays dashboard actions to polling agents.
package command

import (
	"context"
	"encoding/json"
	"strings"

	"warden/internal/application/identity"
	"warden/internal/domain/agent"
	"warden/internal/infrastructure/memstore"
	"warden/internal/shared/biztime"
	"warden/internal/shared/errors"
	"warden/internal/shared/id"
	"warden/internal/shared/logger"
)

const (
	// MaxQueueLength is the most commands a tenant queue holds after a push.
	MaxQueueLength = 200
	// TrimBatch is how many of the oldest commands one overflow drops.
	TrimBatch = 50
)

// Queue is a per-tenant FIFO. Pushes and drains on one tenant are
// serialized by that tenant's lock; other tenants are unaffected.
type Queue struct {
	queues   *memstore.Partitioned[[]agent.Command]
	resolver *identity.Resolver
	now      biztime.Clock
	logger   logger.Interface
}

func NewQueue(resolver *identity.Resolver, logger logger.Interface) *Queue {
	return &Queue{
		queues:   memstore.NewPartitioned[[]agent.Command](nil),
		resolver: resolver,
		now:      biztime.NowUTC,
		logger:   logger,
	}
}

// SetClock replaces the time source.
func (q *Queue) SetClock(c biztime.Clock) {
	q.now = c
}

// Push appends cmd. When the queue grows past MaxQueueLength the oldest
// TrimBatch commands are dropped in one step.
func (q *Queue) Push(key string, cmd agent.Command) {
	dropped := 0
	q.queues.Update(key, func(cmds *[]agent.Command) {
		*cmds = append(*cmds, cmd)
		if len(*cmds) > MaxQueueLength {
			dropped = TrimBatch
			*cmds = append([]agent.Command(nil), (*cmds)[TrimBatch:]...)
		}
	})
	if dropped > 0 {
		q.logger.Warnw("command queue overflow, dropped oldest commands",
			"license_key", key,
			"dropped", dropped,
		)
	}
}

// Drain returns every queued command in push order and empties the queue.
func (q *Queue) Drain(key string) []agent.Command {
	out := []agent.Command{}
	q.queues.View(key, func(cmds *[]agent.Command) {
		if len(*cmds) == 0 {
			return
		}
		out = *cmds
		*cmds = nil
	})
	return out
}

// Len is the current depth of the tenant queue.
func (q *Queue) Len(key string) int {
	n := 0
	q.queues.View(key, func(cmds *[]agent.Command) {
		n = len(*cmds)
	})
	return n
}

// New builds a command stamped with the current time.
func (q *Queue) New(cmdType string, payload json.RawMessage) agent.Command {
	now := q.now()
	if len(payload) == 0 {
		payload = json.RawMessage("null")
	}
	return agent.Command{
		ID:        id.NewCommandID(now),
		Type:      cmdType,
		Payload:   payload,
		CreatedAt: now,
	}
}

// Enqueue resolves token to its tenant and queues a new command there.
func (q *Queue) Enqueue(ctx context.Context, token, cmdType string, payload json.RawMessage) (*agent.Command, error) {
	cmdType = strings.TrimSpace(cmdType)
	if cmdType == "" {
		return nil, errors.NewValidationError(errors.CodeMissingFields, "type is required")
	}

	ident, err := q.resolver.MustResolve(ctx, token)
	if err != nil {
		return nil, err
	}

	cmd := q.New(cmdType, payload)
	q.Push(ident.LicenseKey, cmd)

	q.logger.Infow("command queued",
		"license_key", ident.LicenseKey,
		"type", cmdType,
		"command_id", cmd.ID,
		"by", ident.Kind,
	)
	return &cmd, nil
}
