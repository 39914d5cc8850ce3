package mirror

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"warden/internal/shared/logger"
)

func TestWriterRunsAndSwallowsErrors(t *testing.T) {
	w := NewWriter(time.Second, logger.NewNopLogger())

	var calls atomic.Int32
	w.Write(context.Background(), "ok", func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})
	w.Write(context.Background(), "fail", func(ctx context.Context) error {
		calls.Add(1)
		return errors.New("store down")
	})
	w.Write(context.Background(), "panic", func(ctx context.Context) error {
		calls.Add(1)
		panic("boom")
	})
	w.Wait()

	assert.Equal(t, int32(3), calls.Load())
}

func TestWriterDetachesFromCallerCancellation(t *testing.T) {
	w := NewWriter(time.Second, logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var sawErr atomic.Value
	w.Write(ctx, "detached", func(ctx context.Context) error {
		sawErr.Store(ctx.Err() == nil)
		return nil
	})
	w.Wait()

	assert.Equal(t, true, sawErr.Load())
}

func TestWriterBoundsDuration(t *testing.T) {
	w := NewWriter(20*time.Millisecond, logger.NewNopLogger())

	var timedOut atomic.Bool
	w.Write(context.Background(), "slow", func(ctx context.Context) error {
		<-ctx.Done()
		timedOut.Store(errors.Is(ctx.Err(), context.DeadlineExceeded))
		return ctx.Err()
	})
	w.Wait()

	assert.True(t, timedOut.Load())
}
