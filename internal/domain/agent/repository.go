package agent

import (
	"context"
	"encoding/json"
	"time"
)

// StatusMirror is the persistent copy of liveness records. It is written
// best-effort and never read on the heartbeat path.
type StatusMirror interface {
	Upsert(ctx context.Context, licenseKey string, rec LivenessRecord, online bool) error
	// MarkStaleOffline flags rows last seen before cutoff as offline and
	// returns how many rows changed.
	MarkStaleOffline(ctx context.Context, cutoff time.Time) (int64, error)
}

type LogRepository interface {
	Insert(ctx context.Context, licenseKey string, e *LogEvent) error
	// ListRecent returns at most limit events newest first.
	ListRecent(ctx context.Context, licenseKey string, limit int) ([]*LogEvent, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// SettingsRepository stores the per-license detection settings document.
type SettingsRepository interface {
	// Get returns (nil, nil) when the tenant has no document.
	Get(ctx context.Context, licenseKey string) (json.RawMessage, error)
	Upsert(ctx context.Context, licenseKey string, doc json.RawMessage) error
}
