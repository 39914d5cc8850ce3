package serverlog

import (
	"context"
	"time"

	"warden/internal/domain/agent"
	"warden/internal/shared/biztime"
)

// RetentionJob deletes stored events older than the retention window.
// Buffers are bounded by size and are left alone.
type RetentionJob struct {
	repo   agent.LogRepository
	window time.Duration
	now    biztime.Clock
}

// NewRetentionJob keeps days of history; days <= 0 falls back to 14.
func NewRetentionJob(repo agent.LogRepository, days int) *RetentionJob {
	if days <= 0 {
		days = 14
	}
	return &RetentionJob{
		repo:   repo,
		window: time.Duration(days) * 24 * time.Hour,
		now:    biztime.NowUTC,
	}
}

func (j *RetentionJob) Execute(ctx context.Context) (int, error) {
	n, err := j.repo.DeleteBefore(ctx, j.now().Add(-j.window))
	return int(n), err
}
