// Package license verifies license keys and issues signed assertions.
package license

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"
	"time"

	"warden/internal/application/identity"
	"warden/internal/domain/license"
	"warden/internal/shared/biztime"
	"warden/internal/shared/errors"
	"warden/internal/shared/id"
	"warden/internal/shared/logger"
)

// Reason returned for an unknown key.
const ReasonNotFound = "NOT_FOUND"

// Raised inside the verify transaction when the snapshot read before it is
// stale: another device won the bind, or the license is gone.
var (
	errBoundElsewhere = stderrors.New("license bound to another device")
	errLicenseGone    = stderrors.New("license deleted during verification")
)

// Signer produces the assertion signature.
type Signer interface {
	SignValue(v any) (json.RawMessage, string, error)
}

// TxRunner groups several repository writes into one transaction.
type TxRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Assertion is the signed statement handed to agents. Field order is the
// serialization order and therefore part of the signature.
type Assertion struct {
	LicenseKey string     `json:"license_key"`
	Status     string     `json:"status"`
	ExpiresAt  *time.Time `json:"expires_at"`
	IssuedAt   time.Time  `json:"issued_at"`
}

// VerifyResult carries either a rejection reason or a signed assertion.
// Assertion holds the exact bytes that were signed.
type VerifyResult struct {
	Valid     bool            `json:"valid"`
	Reason    string          `json:"reason,omitempty"`
	Assertion json.RawMessage `json:"assertion,omitempty"`
	Signature string          `json:"signature,omitempty"`
}

// UpdateCommand changes a license from the operator console. Nil fields
// are left alone. ClearExpiry makes the license permanent.
type UpdateCommand struct {
	Status      *string
	ExpiresAt   *time.Time
	ClearExpiry bool
}

type Service struct {
	repo      license.Repository
	tx        TxRunner
	signer    Signer
	resolver  *identity.Resolver
	keyPrefix string
	now       biztime.Clock
	logger    logger.Interface
}

func NewService(
	repo license.Repository,
	tx TxRunner,
	signer Signer,
	resolver *identity.Resolver,
	keyPrefix string,
	logger logger.Interface,
) *Service {
	if keyPrefix == "" {
		keyPrefix = "WARD"
	}
	return &Service{
		repo:      repo,
		tx:        tx,
		signer:    signer,
		resolver:  resolver,
		keyPrefix: keyPrefix,
		now:       biztime.NowUTC,
		logger:    logger,
	}
}

// SetClock replaces the time source.
func (s *Service) SetClock(c biztime.Clock) {
	s.now = c
}

// Verify checks key for use from hwid. Rejections are reported in the
// result; only a missing key and store failures are errors. The hwid bind
// and the last_seen update commit together or not at all.
func (s *Service) Verify(ctx context.Context, key, hwid string) (*VerifyResult, error) {
	key = strings.TrimSpace(key)
	hwid = strings.TrimSpace(hwid)
	if key == "" {
		return nil, errors.NewValidationError(errors.CodeMissingKey, "license_key is required")
	}

	lic, err := s.repo.Get(ctx, key)
	if err != nil {
		s.logger.Errorw("failed to load license", "license_key", key, "error", err)
		return nil, errors.NewDBError("failed to load license", err)
	}
	if lic == nil {
		return &VerifyResult{Valid: false, Reason: ReasonNotFound}, nil
	}

	now := s.now()
	if reason := lic.Check(now, hwid); reason != "" {
		s.logger.Infow("license rejected", "license_key", key, "reason", reason)
		return &VerifyResult{Valid: false, Reason: reason}, nil
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if lic.NeedsBinding(hwid) {
			bound, err := s.repo.BindHWID(ctx, key, hwid)
			if err != nil {
				return err
			}
			if !bound {
				current, err := s.repo.Get(ctx, key)
				if err != nil {
					return err
				}
				if current == nil {
					return errLicenseGone
				}
				if current.BoundHWID() != hwid {
					return errBoundElsewhere
				}
			}
		}
		return s.repo.TouchLastSeen(ctx, key, now)
	})
	switch {
	case stderrors.Is(err, errBoundElsewhere):
		s.logger.Infow("license rejected", "license_key", key, "reason", license.ReasonHWIDMismatch)
		return &VerifyResult{Valid: false, Reason: license.ReasonHWIDMismatch}, nil
	case stderrors.Is(err, errLicenseGone):
		return &VerifyResult{Valid: false, Reason: ReasonNotFound}, nil
	}
	if err != nil {
		s.logger.Errorw("failed to record license verification", "license_key", key, "error", err)
		return nil, errors.NewDBError("failed to record verification", err)
	}

	payload, sig, err := s.signer.SignValue(Assertion{
		LicenseKey: lic.LicenseKey,
		Status:     lic.Status,
		ExpiresAt:  lic.ExpiresAt,
		IssuedAt:   now,
	})
	if err != nil {
		return nil, errors.NewInternalError(errors.CodeServerError, "failed to sign assertion", err)
	}

	return &VerifyResult{
		Valid:     true,
		Assertion: payload,
		Signature: sig,
	}, nil
}

// Issue creates a new ACTIVE license. daysValid <= 0 issues a permanent one.
func (s *Service) Issue(ctx context.Context, daysValid int) (*license.License, error) {
	key, err := id.NewLicenseKey(s.keyPrefix)
	if err != nil {
		return nil, errors.NewInternalError(errors.CodeServerError, "failed to generate license key", err)
	}

	now := s.now()
	lic := &license.License{
		LicenseKey: key,
		Status:     license.StatusActive,
		ExpiresAt:  license.ExpiryFromDays(now, daysValid),
		CreatedAt:  now,
	}
	if err := s.repo.Create(ctx, lic); err != nil {
		s.logger.Errorw("failed to create license", "error", err)
		return nil, errors.NewDBError("failed to create license", err)
	}

	s.logger.Infow("license issued", "license_key", key, "days_valid", daysValid)
	return lic, nil
}

// SetStatus stores status verbatim. Any text is accepted; only ACTIVE
// licenses verify.
func (s *Service) SetStatus(ctx context.Context, key, status string) error {
	if key == "" || status == "" {
		return errors.NewValidationError(errors.CodeMissingFields, "license_key and status are required")
	}
	found, err := s.repo.SetStatus(ctx, key, status)
	if err != nil {
		s.logger.Errorw("failed to set license status", "license_key", key, "error", err)
		return errors.NewDBError("failed to set license status", err)
	}
	if !found {
		return errors.NewNotFoundError(errors.CodeLicenseNotFound, "license not found")
	}
	s.logger.Infow("license status changed", "license_key", key, "status", status)
	return nil
}

// SetStatusViaOwnerToken sets the status of the license owned by token.
func (s *Service) SetStatusViaOwnerToken(ctx context.Context, token, status string) (string, error) {
	if status == "" {
		return "", errors.NewValidationError(errors.CodeMissingFields, "status is required")
	}
	ident, err := s.resolver.RequireOwner(ctx, token)
	if err != nil {
		return "", err
	}
	if err := s.SetStatus(ctx, ident.LicenseKey, status); err != nil {
		return "", err
	}
	return ident.LicenseKey, nil
}

// Get returns the license or LICENSE_NOT_FOUND.
func (s *Service) Get(ctx context.Context, key string) (*license.License, error) {
	lic, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, errors.NewDBError("failed to load license", err)
	}
	if lic == nil {
		return nil, errors.NewNotFoundError(errors.CodeLicenseNotFound, "license not found")
	}
	return lic, nil
}

func (s *Service) List(ctx context.Context) ([]*license.License, error) {
	licenses, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Errorw("failed to list licenses", "error", err)
		return nil, errors.NewDBError("failed to list licenses", err)
	}
	return licenses, nil
}

// Update applies an operator change and returns the updated license.
func (s *Service) Update(ctx context.Context, key string, cmd UpdateCommand) (*license.License, error) {
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if cmd.Status != nil {
			if err := s.SetStatus(ctx, key, *cmd.Status); err != nil {
				return err
			}
		}
		if cmd.ExpiresAt == nil && !cmd.ClearExpiry {
			return nil
		}
		expires := cmd.ExpiresAt
		if cmd.ClearExpiry {
			expires = nil
		}
		found, err := s.repo.SetExpiry(ctx, key, expires)
		if err != nil {
			return errors.NewDBError("failed to set license expiry", err)
		}
		if !found {
			return errors.NewNotFoundError(errors.CodeLicenseNotFound, "license not found")
		}
		return nil
	})
	if err != nil {
		if errors.GetAppError(err) == nil {
			return nil, errors.NewDBError("failed to update license", err)
		}
		return nil, err
	}
	return s.Get(ctx, key)
}

func (s *Service) Delete(ctx context.Context, key string) error {
	found, err := s.repo.Delete(ctx, key)
	if err != nil {
		s.logger.Errorw("failed to delete license", "license_key", key, "error", err)
		return errors.NewDBError("failed to delete license", err)
	}
	if !found {
		return errors.NewNotFoundError(errors.CodeLicenseNotFound, "license not found")
	}
	s.logger.Infow("license deleted", "license_key", key)
	return nil
}
