package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warden/internal/shared/logger"
)

type countingJob struct {
	calls atomic.Int32
}

func (j *countingJob) Execute(ctx context.Context) (int, error) {
	j.calls.Add(1)
	return 1, nil
}

func TestSchedulerManager_RegistersJobs(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewNopLogger())
	require.NoError(t, err)

	require.NoError(t, m.RegisterLogRetentionJob(&countingJob{}))
	require.NoError(t, m.RegisterStatusSweepJob(&countingJob{}, time.Hour))

	names := make([]string, 0, 2)
	for _, j := range m.Jobs() {
		names = append(names, j.Name())
	}
	assert.ElementsMatch(t, []string{"server-log-retention", "server-status-sweep"}, names)
}

func TestSchedulerManager_SweepRunsImmediately(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewNopLogger())
	require.NoError(t, err)

	job := &countingJob{}
	require.NoError(t, m.RegisterStatusSweepJob(job, time.Hour))

	m.Start()
	assert.True(t, m.IsStarted())
	assert.Eventually(t, func() bool { return job.calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, m.Stop())
	assert.False(t, m.IsStarted())
	require.NoError(t, m.Stop())
}
