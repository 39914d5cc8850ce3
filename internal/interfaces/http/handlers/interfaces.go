package handlers

import (
	"context"
	"encoding/json"

	accountapp "warden/internal/application/account"
	banapp "warden/internal/application/ban"
	"warden/internal/application/identity"
	licenseapp "warden/internal/application/license"
	"warden/internal/application/liveness"
	"warden/internal/application/serverlog"
	"warden/internal/domain/account"
	"warden/internal/domain/agent"
	"warden/internal/domain/ban"
	"warden/internal/domain/license"
)

// LicenseService is implemented by license.Service.
type LicenseService interface {
	Verify(ctx context.Context, key, hwid string) (*licenseapp.VerifyResult, error)
	Issue(ctx context.Context, daysValid int) (*license.License, error)
	SetStatusViaOwnerToken(ctx context.Context, token, status string) (string, error)
	List(ctx context.Context) ([]*license.License, error)
	Update(ctx context.Context, key string, cmd licenseapp.UpdateCommand) (*license.License, error)
	Delete(ctx context.Context, key string) error
}

// LivenessTracker is implemented by liveness.Tracker.
type LivenessTracker interface {
	Heartbeat(ctx context.Context, cmd liveness.HeartbeatCommand) (agent.Status, error)
	Status(key string) agent.Status
	Roster(key string) []agent.Player
}

// CommandQueue is implemented by command.Queue.
type CommandQueue interface {
	Drain(key string) []agent.Command
	Enqueue(ctx context.Context, token, cmdType string, payload json.RawMessage) (*agent.Command, error)
}

// LogService is implemented by serverlog.Service.
type LogService interface {
	Ingest(ctx context.Context, cmd serverlog.IngestCommand) (*agent.LogEvent, error)
	Read(ctx context.Context, key string, limit int) ([]*agent.LogEvent, error)
}

// SettingsService is implemented by account.SettingsService.
type SettingsService interface {
	Get(ctx context.Context, key string) (json.RawMessage, error)
	Put(ctx context.Context, key string, doc json.RawMessage) (json.RawMessage, error)
}

// BanService is implemented by ban.Service.
type BanService interface {
	Create(ctx context.Context, cmd banapp.CreateCommand) (*ban.Ban, error)
	List(ctx context.Context, key string) ([]*ban.Ban, error)
	Check(ctx context.Context, key string, identifiers []string) (*banapp.CheckResult, error)
	AttachEvidence(ctx context.Context, key, banID, dataURI string) (string, error)
	Lift(ctx context.Context, banID, token string) (*ban.Ban, error)
	LiftUnchecked(ctx context.Context, banID string) (*ban.Ban, error)
}

// CustomerService is implemented by account.CustomerService.
type CustomerService interface {
	Login(ctx context.Context, email, password string) (*accountapp.LoginResult, error)
	Dashboard(ctx context.Context, token string) (*accountapp.Dashboard, error)
	Create(ctx context.Context, cmd accountapp.CreateCustomerCommand) (*account.Customer, error)
	List(ctx context.Context) ([]*account.Customer, error)
}

// PanelAdminService is implemented by account.PanelAdminService.
type PanelAdminService interface {
	List(ctx context.Context, owner identity.Identity) ([]*account.PanelAdmin, error)
	Create(ctx context.Context, owner identity.Identity, username, password string) (*accountapp.CreatedAdmin, error)
	Update(ctx context.Context, owner identity.Identity, adminID uint, cmd accountapp.UpdateAdminCommand) (*account.PanelAdmin, error)
	Delete(ctx context.Context, owner identity.Identity, adminID uint) error
	Login(ctx context.Context, licenseKey, username, password string) (*accountapp.AdminLoginResult, error)
}

// OperatorService is implemented by account.OperatorService.
type OperatorService interface {
	Login(ctx context.Context, password string) (*accountapp.OperatorSession, error)
}
