package account

import (
	"context"
	"strings"

	"warden/internal/application/identity"
	"warden/internal/domain/account"
	"warden/internal/shared/biztime"
	"warden/internal/shared/errors"
	"warden/internal/shared/id"
	"warden/internal/shared/logger"
)

// CreatedAdmin carries the plaintext token, which is shown exactly once.
type CreatedAdmin struct {
	Admin *account.PanelAdmin
	Token string
}

// AdminLoginResult is returned to a panel admin after login.
type AdminLoginResult struct {
	Token      string `json:"token"`
	LicenseKey string `json:"license_key"`
	Username   string `json:"username"`
}

// UpdateAdminCommand changes an admin. Nil fields are left alone.
type UpdateAdminCommand struct {
	Active   *bool
	Password *string
}

// PanelAdminService lets owners manage delegated admins. Every method
// except Login expects an owner identity resolved by the caller.
type PanelAdminService struct {
	admins account.PanelAdminRepository
	now    biztime.Clock
	logger logger.Interface
}

func NewPanelAdminService(admins account.PanelAdminRepository, logger logger.Interface) *PanelAdminService {
	return &PanelAdminService{
		admins: admins,
		now:    biztime.NowUTC,
		logger: logger,
	}
}

func requireOwner(owner identity.Identity) error {
	if !owner.Resolved() {
		return errors.NewUnauthorizedError(errors.CodeUnauthorized, "invalid or missing token")
	}
	if !owner.IsOwner() {
		return errors.NewForbiddenError("owner token required")
	}
	return nil
}

func (s *PanelAdminService) List(ctx context.Context, owner identity.Identity) ([]*account.PanelAdmin, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}
	admins, err := s.admins.ListByLicense(ctx, owner.LicenseKey)
	if err != nil {
		return nil, errors.NewDBError("failed to list panel admins", err)
	}
	return admins, nil
}

// Create adds an active admin and returns its freshly generated token.
func (s *PanelAdminService) Create(ctx context.Context, owner identity.Identity, username, password string) (*CreatedAdmin, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errors.NewValidationError(errors.CodeMissingFields, "username and password are required")
	}

	existing, err := s.admins.GetByUsername(ctx, owner.LicenseKey, username)
	if err != nil {
		return nil, errors.NewDBError("failed to load panel admin", err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("username already taken")
	}

	token, err := id.NewSecretToken()
	if err != nil {
		return nil, errors.NewInternalError(errors.CodeServerError, "failed to generate token", err)
	}
	now := s.now()
	admin := &account.PanelAdmin{
		LicenseKey:   owner.LicenseKey,
		Username:     username,
		PasswordHash: account.Digest(password),
		TokenHash:    account.Digest(token),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		s.logger.Errorw("failed to create panel admin", "license_key", owner.LicenseKey, "error", err)
		return nil, errors.NewDBError("failed to create panel admin", err)
	}

	s.logger.Infow("panel admin created", "license_key", owner.LicenseKey, "admin_id", admin.ID)
	return &CreatedAdmin{Admin: admin, Token: token}, nil
}

func (s *PanelAdminService) owned(ctx context.Context, owner identity.Identity, adminID uint) (*account.PanelAdmin, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}
	admin, err := s.admins.GetByID(ctx, adminID)
	if err != nil {
		return nil, errors.NewDBError("failed to load panel admin", err)
	}
	if admin == nil || admin.LicenseKey != owner.LicenseKey {
		return nil, errors.NewNotFoundError(errors.CodeNotFound, "panel admin not found")
	}
	return admin, nil
}

func (s *PanelAdminService) Update(ctx context.Context, owner identity.Identity, adminID uint, cmd UpdateAdminCommand) (*account.PanelAdmin, error) {
	admin, err := s.owned(ctx, owner, adminID)
	if err != nil {
		return nil, err
	}
	if cmd.Active != nil {
		admin.Active = *cmd.Active
	}
	if cmd.Password != nil {
		if *cmd.Password == "" {
			return nil, errors.NewValidationError(errors.CodeMissingFields, "password must not be empty")
		}
		admin.PasswordHash = account.Digest(*cmd.Password)
	}
	admin.UpdatedAt = s.now()

	if err := s.admins.Update(ctx, admin); err != nil {
		s.logger.Errorw("failed to update panel admin", "admin_id", adminID, "error", err)
		return nil, errors.NewDBError("failed to update panel admin", err)
	}
	return admin, nil
}

func (s *PanelAdminService) Delete(ctx context.Context, owner identity.Identity, adminID uint) error {
	if _, err := s.owned(ctx, owner, adminID); err != nil {
		return err
	}
	if err := s.admins.Delete(ctx, adminID); err != nil {
		s.logger.Errorw("failed to delete panel admin", "admin_id", adminID, "error", err)
		return errors.NewDBError("failed to delete panel admin", err)
	}
	s.logger.Infow("panel admin deleted", "license_key", owner.LicenseKey, "admin_id", adminID)
	return nil
}

// Login issues a new token for an active admin. The previous token stops
// working because only the newest digest is kept. licenseKey narrows the
// lookup when the same username exists under several licenses.
func (s *PanelAdminService) Login(ctx context.Context, licenseKey, username, password string) (*AdminLoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errors.NewValidationError(errors.CodeMissingFields, "username and password are required")
	}

	var candidates []*account.PanelAdmin
	if licenseKey != "" {
		admin, err := s.admins.GetByUsername(ctx, licenseKey, username)
		if err != nil {
			return nil, errors.NewDBError("failed to load panel admin", err)
		}
		if admin != nil {
			candidates = append(candidates, admin)
		}
	} else {
		found, err := s.admins.FindByUsername(ctx, username)
		if err != nil {
			return nil, errors.NewDBError("failed to load panel admin", err)
		}
		candidates = found
	}

	var admin *account.PanelAdmin
	for _, c := range candidates {
		if c.Active && account.DigestMatches(password, c.PasswordHash) {
			admin = c
			break
		}
	}
	if admin == nil {
		s.logger.Infow("panel admin login rejected", "username", username)
		return nil, errors.NewUnauthorizedError(errors.CodeInvalidCredentials, "invalid username or password")
	}

	token, err := id.NewSecretToken()
	if err != nil {
		return nil, errors.NewInternalError(errors.CodeServerError, "failed to generate token", err)
	}
	admin.TokenHash = account.Digest(token)
	admin.UpdatedAt = s.now()
	if err := s.admins.Update(ctx, admin); err != nil {
		s.logger.Errorw("failed to rotate panel admin token", "admin_id", admin.ID, "error", err)
		return nil, errors.NewDBError("failed to rotate token", err)
	}

	return &AdminLoginResult{Token: token, LicenseKey: admin.LicenseKey, Username: admin.Username}, nil
}
