package http

import (
	"time"

	"gorm.io/gorm"

	"warden/internal/domain/account"
	"warden/internal/domain/agent"
	"warden/internal/domain/ban"
	"warden/internal/domain/license"
	"warden/internal/infrastructure/repository"
	"warden/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
// Types match the return types of the repository constructors.
type repositories struct {
	licenseRepo    license.Repository
	customerRepo   account.CustomerRepository
	panelAdminRepo account.PanelAdminRepository
	banRepo        ban.Repository
	statusMirror   agent.StatusMirror
	logRepo        agent.LogRepository
	settingsRepo   agent.SettingsRepository
}

// newRepositories creates all repositories. Every call they make is bounded
// by timeout.
func newRepositories(db *gorm.DB, timeout time.Duration, log logger.Interface) *repositories {
	return &repositories{
		licenseRepo:    repository.NewLicenseRepository(db, timeout, log),
		customerRepo:   repository.NewCustomerRepository(db, timeout),
		panelAdminRepo: repository.NewPanelAdminRepository(db, timeout),
		banRepo:        repository.NewBanRepository(db, timeout, log),
		statusMirror:   repository.NewServerStatusRepository(db, timeout),
		logRepo:        repository.NewServerLogRepository(db, timeout),
		settingsRepo:   repository.NewDetectionSettingsRepository(db, timeout),
	}
}
