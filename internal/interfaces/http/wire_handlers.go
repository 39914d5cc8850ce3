package http

import (
	accountApp "warden/internal/application/account"
	"warden/internal/interfaces/http/handlers"
	"warden/internal/interfaces/http/middleware"
)

// allHandlers holds all HTTP handler and middleware instances.
type allHandlers struct {
	licenseHandler    *handlers.LicenseHandler
	serverHandler     *handlers.ServerHandler
	banHandler        *handlers.BanHandler
	dashboardHandler  *handlers.DashboardHandler
	customerHandler   *handlers.CustomerHandler
	panelAdminHandler *handlers.PanelAdminHandler
	operatorHandler   *handlers.OperatorHandler
	healthHandler     *handlers.HealthHandler

	identityMiddleware *middleware.IdentityMiddleware
	operatorAuth       *middleware.OperatorAuthMiddleware
}

// ============================================================
// Section 4: Handlers and middlewares
// ============================================================

func (c *Container) initHandlers() {
	log := c.log.Named("http")
	s := c.svcs

	var pinger handlers.Pinger
	if sqlDB, err := c.db.DB(); err == nil {
		pinger = sqlDB
	} else {
		log.Warnw("health check will not ping the database", "error", err)
	}

	c.hdlrs = &allHandlers{
		licenseHandler:    handlers.NewLicenseHandler(s.licenses, log),
		serverHandler:     handlers.NewServerHandler(s.tracker, s.queue, s.logs, s.settings, log),
		banHandler:        handlers.NewBanHandler(s.bans, log),
		dashboardHandler:  handlers.NewDashboardHandler(s.queue, s.settings, log),
		customerHandler:   handlers.NewCustomerHandler(s.customers, s.licenses, log),
		panelAdminHandler: handlers.NewPanelAdminHandler(s.admins, log),
		operatorHandler:   handlers.NewOperatorHandler(s.operator, s.licenses, s.customers, log),
		healthHandler:     handlers.NewHealthHandler(pinger, s.tracker),

		identityMiddleware: middleware.NewIdentityMiddleware(s.resolver, s.enforcer, log),
		operatorAuth:       middleware.NewOperatorAuthMiddleware(s.jwtSvc, accountApp.OperatorRole, log),
	}
}
