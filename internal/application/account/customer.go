// Package account covers the people around a license: the owning
// customer, the panel admins they delegate to and the operator console.
package account

import (
	"context"
	"strings"

	"warden/internal/application/identity"
	"warden/internal/domain/account"
	"warden/internal/domain/agent"
	"warden/internal/domain/license"
	"warden/internal/shared/biztime"
	"warden/internal/shared/errors"
	"warden/internal/shared/id"
	"warden/internal/shared/logger"
	"warden/internal/shared/utils"
	"warden/internal/shared/version"
)

// StatusReader is the liveness view the dashboard shows.
type StatusReader interface {
	Status(key string) agent.Status
}

// QueueDepth reports how many commands wait for the agent.
type QueueDepth interface {
	Len(key string) int
}

// BanCounter counts bans still in force.
type BanCounter interface {
	CountActive(ctx context.Context, key string) (int64, error)
}

// LoginResult is returned to a customer after a successful login. Token
// is the owner token for every later dashboard call.
type LoginResult struct {
	Token      string `json:"token"`
	LicenseKey string `json:"license_key"`
	Email      string `json:"email"`
}

// Dashboard is the customer's overview of their license.
type Dashboard struct {
	License       *license.License
	Status        agent.Status
	ActiveBans    int64
	QueuedActions int
	AgentOutdated bool
}

// CreateCustomerCommand is issued from the operator console.
type CreateCustomerCommand struct {
	Email      string
	Password   string
	LicenseKey string
}

type CustomerService struct {
	customers account.CustomerRepository
	licenses  license.Repository
	resolver  *identity.Resolver
	status    StatusReader
	queue     QueueDepth
	bans      BanCounter
	latest    string
	now       biztime.Clock
	logger    logger.Interface
}

func NewCustomerService(
	customers account.CustomerRepository,
	licenses license.Repository,
	resolver *identity.Resolver,
	status StatusReader,
	queue QueueDepth,
	bans BanCounter,
	logger logger.Interface,
) *CustomerService {
	return &CustomerService{
		customers: customers,
		licenses:  licenses,
		resolver:  resolver,
		status:    status,
		queue:     queue,
		bans:      bans,
		now:       biztime.NowUTC,
		logger:    logger,
	}
}

// SetLatestAgentVersion enables the outdated-agent flag on dashboards.
func (s *CustomerService) SetLatestAgentVersion(v string) {
	s.latest = v
}

func invalidCredentials() error {
	return errors.NewUnauthorizedError(errors.CodeInvalidCredentials, "invalid email or password")
}

// Login checks email and password against the stored digest.
func (s *CustomerService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, errors.NewValidationError(errors.CodeMissingFields, "email and password are required")
	}

	c, err := s.customers.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Errorw("failed to load customer", "error", err)
		return nil, errors.NewDBError("failed to load customer", err)
	}
	if c == nil || !account.DigestMatches(password, c.PasswordHash) {
		s.logger.Infow("customer login rejected", "email", utils.MaskEmail(email))
		return nil, invalidCredentials()
	}

	return &LoginResult{Token: c.ID, LicenseKey: c.LicenseKey, Email: c.Email}, nil
}

// Dashboard collects everything the owner's overview page shows.
func (s *CustomerService) Dashboard(ctx context.Context, token string) (*Dashboard, error) {
	ident, err := s.resolver.RequireOwner(ctx, token)
	if err != nil {
		return nil, err
	}

	lic, err := s.licenses.Get(ctx, ident.LicenseKey)
	if err != nil {
		return nil, errors.NewDBError("failed to load license", err)
	}
	if lic == nil {
		return nil, errors.NewNotFoundError(errors.CodeLicenseNotFound, "license not found")
	}

	active, err := s.bans.CountActive(ctx, ident.LicenseKey)
	if err != nil {
		return nil, err
	}

	status := s.status.Status(ident.LicenseKey)
	return &Dashboard{
		License:       lic,
		Status:        status,
		ActiveBans:    active,
		QueuedActions: s.queue.Len(ident.LicenseKey),
		AgentOutdated: s.latest != "" && status.Version != "" && version.HasNewerVersion(status.Version, s.latest),
	}, nil
}

// Create registers a customer for an existing license.
func (s *CustomerService) Create(ctx context.Context, cmd CreateCustomerCommand) (*account.Customer, error) {
	email := strings.TrimSpace(strings.ToLower(cmd.Email))
	if email == "" || cmd.Password == "" || cmd.LicenseKey == "" {
		return nil, errors.NewValidationError(errors.CodeMissingFields, "email, password and license_key are required")
	}

	lic, err := s.licenses.Get(ctx, cmd.LicenseKey)
	if err != nil {
		return nil, errors.NewDBError("failed to load license", err)
	}
	if lic == nil {
		return nil, errors.NewNotFoundError(errors.CodeLicenseNotFound, "license not found")
	}

	existing, err := s.customers.GetByEmail(ctx, email)
	if err != nil {
		return nil, errors.NewDBError("failed to load customer", err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("email already registered")
	}

	c := &account.Customer{
		ID:           id.NewUUID(),
		Email:        email,
		PasswordHash: account.Digest(cmd.Password),
		LicenseKey:   cmd.LicenseKey,
		CreatedAt:    s.now(),
	}
	if err := s.customers.Create(ctx, c); err != nil {
		s.logger.Errorw("failed to create customer", "email", utils.MaskEmail(email), "error", err)
		return nil, errors.NewDBError("failed to create customer", err)
	}

	s.logger.Infow("customer created", "customer_id", c.ID, "license_key", c.LicenseKey)
	return c, nil
}

func (s *CustomerService) List(ctx context.Context) ([]*account.Customer, error) {
	customers, err := s.customers.List(ctx)
	if err != nil {
		return nil, errors.NewDBError("failed to list customers", err)
	}
	return customers, nil
}
