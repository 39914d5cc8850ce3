package ban

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, b *Ban) error
	// Get returns (nil, nil) when no ban has the id.
	Get(ctx context.Context, banID string) (*Ban, error)
	// ListByLicense returns bans newest first.
	ListByLicense(ctx context.Context, licenseKey string) ([]*Ban, error)
	// FindActiveByIdentifiers returns the newest ban of the tenant that is
	// active at now and shares at least one identifier, or nil.
	FindActiveByIdentifiers(ctx context.Context, licenseKey string, identifiers []string, now time.Time) (*Ban, error)
	CountActive(ctx context.Context, licenseKey string, now time.Time) (int64, error)
	SetEvidenceURL(ctx context.Context, banID, url string) (bool, error)
	SetExpiry(ctx context.Context, banID string, expiresAt time.Time) (bool, error)
}
