package account

import "context"

// CustomerRepository lookups return (nil, nil) when nothing matches.
type CustomerRepository interface {
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, id string) (*Customer, error)
	GetByEmail(ctx context.Context, email string) (*Customer, error)
	List(ctx context.Context) ([]*Customer, error)
}

// PanelAdminRepository lookups return (nil, nil) when nothing matches.
type PanelAdminRepository interface {
	Create(ctx context.Context, a *PanelAdmin) error
	GetByID(ctx context.Context, id uint) (*PanelAdmin, error)
	GetActiveByTokenHash(ctx context.Context, tokenHash string) (*PanelAdmin, error)
	GetByUsername(ctx context.Context, licenseKey, username string) (*PanelAdmin, error)
	FindByUsername(ctx context.Context, username string) ([]*PanelAdmin, error)
	ListByLicense(ctx context.Context, licenseKey string) ([]*PanelAdmin, error)
	Update(ctx context.Context, a *PanelAdmin) error
	Delete(ctx context.Context, id uint) error
}
