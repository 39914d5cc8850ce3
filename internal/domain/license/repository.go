package license

import (
	"context"
	"time"
)

// Repository persists licenses. Get returns (nil, nil) when the key is unknown.
type Repository interface {
	Create(ctx context.Context, l *License) error
	Get(ctx context.Context, key string) (*License, error)
	List(ctx context.Context) ([]*License, error)
	// BindHWID binds hwid only when no device is bound yet and reports
	// whether this call did the binding.
	BindHWID(ctx context.Context, key, hwid string) (bool, error)
	TouchLastSeen(ctx context.Context, key string, at time.Time) error
	SetStatus(ctx context.Context, key, status string) (bool, error)
	SetExpiry(ctx context.Context, key string, expiresAt *time.Time) (bool, error)
	Delete(ctx context.Context, key string) (bool, error)
}
