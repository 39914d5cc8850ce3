// Package mirror runs best-effort persistence next to in-memory state.
package mirror

import (
	"context"
	"sync"
	"time"

	"warden/internal/shared/goroutine"
	"warden/internal/shared/logger"
)

// Writer executes fire-and-forget store writes. Each write gets its own
// bounded context detached from the caller's cancellation. A failed write
// is logged and dropped; nothing is retried and the caller never sees it.
type Writer struct {
	timeout time.Duration
	logger  logger.Interface
	wg      sync.WaitGroup
}

func NewWriter(timeout time.Duration, log logger.Interface) *Writer {
	return &Writer{
		timeout: timeout,
		logger:  log,
	}
}

// Write schedules fn and returns immediately.
func (w *Writer) Write(ctx context.Context, name string, fn func(ctx context.Context) error) {
	detached := context.WithoutCancel(ctx)
	w.wg.Add(1)
	goroutine.SafeGo(w.logger, "mirror-"+name, func() {
		defer w.wg.Done()

		ctx, cancel := context.WithTimeout(detached, w.timeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			w.logger.Warnw("best-effort write failed",
				"write", name,
				"error", err,
			)
		}
	})
}

// Wait blocks until every scheduled write has finished.
func (w *Writer) Wait() {
	w.wg.Wait()
}
