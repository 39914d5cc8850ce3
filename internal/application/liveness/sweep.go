package liveness

import (
	"context"

	"warden/internal/domain/agent"
	"warden/internal/shared/biztime"
)

// StaleSweep flips mirrored status rows to offline once their agent has
// been silent for longer than the online window. In-memory state needs no
// sweep because online is derived on read.
type StaleSweep struct {
	mirror agent.StatusMirror
	now    biztime.Clock
}

func NewStaleSweep(statusMirror agent.StatusMirror) *StaleSweep {
	return &StaleSweep{mirror: statusMirror, now: biztime.NowUTC}
}

func (j *StaleSweep) Execute(ctx context.Context) (int, error) {
	n, err := j.mirror.MarkStaleOffline(ctx, j.now().Add(-agent.OnlineWindow))
	return int(n), err
}
