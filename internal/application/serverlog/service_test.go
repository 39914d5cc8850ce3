package serverlog

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warden/internal/application/testutil"
	"warden/internal/domain/agent"
	"warden/internal/infrastructure/mirror"
	"warden/internal/shared/errors"
)

func newService(t *testing.T) (*Service, *testutil.MockLogRepository, *mirror.Writer) {
	t.Helper()
	log := testutil.NewMockLogger()
	repo := testutil.NewMockLogRepository()
	writer := mirror.NewWriter(time.Second, log)
	return NewService(repo, writer, log), repo, writer
}

func TestIngest_BufferKeepsNewest300(t *testing.T) {
	svc, repo, writer := newService(t)
	repo.ListErr = stderrors.New("store down")
	ctx := context.Background()

	for i := 1; i <= 310; i++ {
		_, err := svc.Ingest(ctx, IngestCommand{LicenseKey: "WARD-A", Message: fmt.Sprintf("m%03d", i)})
		require.NoError(t, err)
	}
	writer.Wait()

	events, err := svc.Read(ctx, "WARD-A", MaxReadLimit)
	require.NoError(t, err)
	require.Len(t, events, BufferCapacity)
	assert.Equal(t, "m310", events[0].Message)
	assert.Equal(t, "m011", events[len(events)-1].Message)
	assert.Equal(t, 310, repo.Count("WARD-A"))
}

func TestIngest_DefaultsAndValidation(t *testing.T) {
	svc, _, writer := newService(t)
	defer writer.Wait()
	ctx := context.Background()

	ev, err := svc.Ingest(ctx, IngestCommand{LicenseKey: "WARD-A", Message: "player joined", Meta: json.RawMessage(`{"id":7}`)})
	require.NoError(t, err)
	assert.Equal(t, agent.DefaultLogLevel, ev.Level)
	assert.Equal(t, agent.DefaultLogType, ev.Type)
	assert.Equal(t, agent.DefaultLogTitle, ev.Title)
	assert.NotEmpty(t, ev.ID)
	assert.JSONEq(t, `{"id":7}`, string(ev.Meta))

	ev, err = svc.Ingest(ctx, IngestCommand{LicenseKey: "WARD-A", Message: "x", Level: "error", Meta: json.RawMessage("null")})
	require.NoError(t, err)
	assert.Equal(t, "error", ev.Level)
	assert.Nil(t, ev.Meta)

	_, err = svc.Ingest(ctx, IngestCommand{LicenseKey: "WARD-A"})
	assert.True(t, errors.HasCode(err, errors.CodeMissingFields))
	_, err = svc.Ingest(ctx, IngestCommand{Message: "orphan"})
	assert.True(t, errors.HasCode(err, errors.CodeMissingFields))
}

func TestRead_StoreIsAuthoritativeEvenWhenEmpty(t *testing.T) {
	svc, repo, writer := newService(t)
	ctx := context.Background()
	repo.InsertErr = stderrors.New("insert failed")

	_, err := svc.Ingest(ctx, IngestCommand{LicenseKey: "WARD-A", Message: "buffer only"})
	require.NoError(t, err)
	writer.Wait()

	events, err := svc.Read(ctx, "WARD-A", 10)
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.NotNil(t, events)
}

func TestRead_TrimsLicenseKey(t *testing.T) {
	svc, repo, writer := newService(t)
	ctx := context.Background()

	_, err := svc.Ingest(ctx, IngestCommand{LicenseKey: " WARD-A\t", Message: "padded ingest"})
	require.NoError(t, err)
	writer.Wait()

	events, err := svc.Read(ctx, "  WARD-A ", 10)
	require.NoError(t, err)
	require.Len(t, events, 1, "store read uses the trimmed key")

	repo.ListErr = stderrors.New("store down")
	events, err = svc.Read(ctx, " WARD-A ", 10)
	require.NoError(t, err)
	require.Len(t, events, 1, "buffer fallback uses the trimmed key")
	assert.Equal(t, "padded ingest", events[0].Message)

	assert.Len(t, svc.Buffered("WARD-A  ", 10), 1)
	assert.Empty(t, svc.Buffered("WARD-B", 10))
}

func TestIngest_ConcurrentIngestAndReadLoseNothing(t *testing.T) {
	svc, repo, writer := newService(t)
	repo.ListErr = stderrors.New("store down")
	ctx := context.Background()

	const writers, perWriter, readers = 8, 30, 4
	var (
		wg       sync.WaitGroup
		done     = make(chan struct{})
		readErrs = make(chan error, readers)
	)

	for r := 0; r < readers; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				events, err := svc.Read(ctx, "WARD-A", MaxReadLimit)
				if err != nil {
					readErrs <- err
					return
				}
				if len(events) > BufferCapacity {
					readErrs <- fmt.Errorf("read %d events, cap is %d", len(events), BufferCapacity)
					return
				}
				last := map[int]int{}
				for _, e := range events {
					var w, seq int
					if _, err := fmt.Sscanf(e.Message, "w%d-%d", &w, &seq); err != nil {
						readErrs <- err
						return
					}
					if prev, ok := last[w]; ok && seq >= prev {
						readErrs <- fmt.Errorf("writer %d out of order: %d after %d", w, seq, prev)
						return
					}
					last[w] = seq
				}
			}
		}()
	}

	var ingest sync.WaitGroup
	for w := 0; w < writers; w++ {
		ingest.Add(1)
		go func(w int) {
			defer ingest.Done()
			for i := 0; i < perWriter; i++ {
				_, err := svc.Ingest(ctx, IngestCommand{LicenseKey: "WARD-A", Message: fmt.Sprintf("w%d-%d", w, i)})
				assert.NoError(t, err)
			}
		}(w)
	}
	ingest.Wait()
	close(done)
	wg.Wait()
	writer.Wait()
	close(readErrs)
	for err := range readErrs {
		t.Error(err)
	}

	events := svc.Buffered("WARD-A", MaxReadLimit)
	require.Len(t, events, writers*perWriter)
	seen := make(map[string]bool, len(events))
	for _, e := range events {
		assert.False(t, seen[e.Message], "duplicate %s", e.Message)
		seen[e.Message] = true
	}
	assert.Equal(t, writers*perWriter, repo.Count("WARD-A"))

	for i := 0; i < BufferCapacity; i++ {
		_, err := svc.Ingest(ctx, IngestCommand{LicenseKey: "WARD-A", Message: fmt.Sprintf("w99-%d", i)})
		require.NoError(t, err)
	}
	writer.Wait()
	events = svc.Buffered("WARD-A", MaxReadLimit)
	require.Len(t, events, BufferCapacity)
	assert.Equal(t, fmt.Sprintf("w99-%d", BufferCapacity-1), events[0].Message)
}

func TestRead_ClampsLimit(t *testing.T) {
	svc, _, writer := newService(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := svc.Ingest(ctx, IngestCommand{LicenseKey: "WARD-A", Message: "x"})
		require.NoError(t, err)
	}
	writer.Wait()

	events, err := svc.Read(ctx, "WARD-A", 2)
	require.NoError(t, err)
	assert.Len(t, events, 2)

	assert.Equal(t, DefaultReadLimit, ClampLimit(0))
	assert.Equal(t, DefaultReadLimit, ClampLimit(-3))
	assert.Equal(t, 1, ClampLimit(1))
	assert.Equal(t, MaxReadLimit, ClampLimit(10_000))
}

func TestRetentionJob(t *testing.T) {
	repo := testutil.NewMockLogRepository()
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 3, 30, 0, 0, time.UTC)
	require.NoError(t, repo.Insert(ctx, "WARD-A", &agent.LogEvent{ID: "old", Time: now.AddDate(0, 0, -20)}))
	require.NoError(t, repo.Insert(ctx, "WARD-A", &agent.LogEvent{ID: "new", Time: now.AddDate(0, 0, -1)}))

	job := NewRetentionJob(repo, 14)
	job.now = func() time.Time { return now }

	n, err := job.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, repo.Count("WARD-A"))
}
