// Package identity resolves dashboard tokens to the tenant they act for.
package identity

import (
	"context"
	"strconv"

	"warden/internal/domain/account"
	"warden/internal/shared/errors"
	"warden/internal/shared/logger"
)

// Kind tells which namespace a token resolved in. The string values double
// as permission roles.
type Kind string

const (
	KindUnresolved Kind = ""
	KindOwner      Kind = "owner"
	KindAdmin      Kind = "admin"
)

// Identity is the result of Resolve. LicenseKey and SubjectID are empty
// unless Kind is Owner or Admin.
type Identity struct {
	Kind       Kind
	LicenseKey string
	// SubjectID is the customer id for owners and the panel admin id for
	// admins.
	SubjectID string
}

func (i Identity) Resolved() bool {
	return i.Kind != KindUnresolved
}

func (i Identity) IsOwner() bool {
	return i.Kind == KindOwner
}

// Role is the permission role of the identity.
func (i Identity) Role() string {
	return string(i.Kind)
}

// Resolver maps a bearer token to an Identity. Owner tokens are customer
// ids compared as-is. Admin tokens are matched by their digest against
// active panel admins.
type Resolver struct {
	customers account.CustomerRepository
	admins    account.PanelAdminRepository
	logger    logger.Interface
}

func NewResolver(
	customers account.CustomerRepository,
	admins account.PanelAdminRepository,
	logger logger.Interface,
) *Resolver {
	return &Resolver{
		customers: customers,
		admins:    admins,
		logger:    logger,
	}
}

// Resolve never touches the store for an empty token. A store failure is
// returned as DB_ERROR and not as Unresolved.
func (r *Resolver) Resolve(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, nil
	}
	if ident, ok := cached(ctx, token); ok {
		return ident, nil
	}

	customer, err := r.customers.GetByID(ctx, token)
	if err != nil {
		r.logger.Errorw("failed to look up customer token", "error", err)
		return Identity{}, errors.NewDBError("failed to resolve token", err)
	}
	if customer != nil {
		return Identity{
			Kind:       KindOwner,
			LicenseKey: customer.LicenseKey,
			SubjectID:  customer.ID,
		}, nil
	}

	admin, err := r.admins.GetActiveByTokenHash(ctx, account.Digest(token))
	if err != nil {
		r.logger.Errorw("failed to look up panel admin token", "error", err)
		return Identity{}, errors.NewDBError("failed to resolve token", err)
	}
	if admin != nil {
		return Identity{
			Kind:       KindAdmin,
			LicenseKey: admin.LicenseKey,
			SubjectID:  strconv.FormatUint(uint64(admin.ID), 10),
		}, nil
	}

	return Identity{}, nil
}

// MustResolve is Resolve with Unresolved turned into UNAUTHORIZED.
func (r *Resolver) MustResolve(ctx context.Context, token string) (Identity, error) {
	ident, err := r.Resolve(ctx, token)
	if err != nil {
		return Identity{}, err
	}
	if !ident.Resolved() {
		return Identity{}, errors.NewUnauthorizedError(errors.CodeUnauthorized, "invalid or missing token")
	}
	return ident, nil
}

// RequireOwner resolves token and rejects anything but an owner.
func (r *Resolver) RequireOwner(ctx context.Context, token string) (Identity, error) {
	ident, err := r.MustResolve(ctx, token)
	if err != nil {
		return Identity{}, err
	}
	if !ident.IsOwner() {
		return Identity{}, errors.NewForbiddenError("owner token required")
	}
	return ident, nil
}
