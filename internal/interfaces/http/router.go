package http

import (
	"warden/internal/interfaces/http/middleware"
	"warden/internal/interfaces/http/routes"
)

// SetupRoutes configures all HTTP routes.
func (c *Container) SetupRoutes() {
	h := c.hdlrs
	log := c.log.Named("http")

	c.engine.Use(middleware.Logger(log))
	c.engine.Use(middleware.Recovery(log))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))

	c.engine.GET("/health", h.healthHandler.Health)

	// Evidence screenshots are plain files under the bucket directory.
	c.engine.Static(c.cfg.Storage.PublicPath, c.svcs.blobStore.BucketDir(c.cfg.Storage.EvidenceBucket))

	rateLimit := middleware.RateLimit(c.svcs.rateLimiter, log)

	routes.SetupServerRoutes(c.engine, &routes.ServerRouteConfig{
		LicenseHandler: h.licenseHandler,
		ServerHandler:  h.serverHandler,
		BanHandler:     h.banHandler,
		Identity:       h.identityMiddleware,
		RateLimit:      rateLimit,
	})

	routes.SetupDashboardRoutes(c.engine, &routes.DashboardRouteConfig{
		DashboardHandler:  h.dashboardHandler,
		CustomerHandler:   h.customerHandler,
		PanelAdminHandler: h.panelAdminHandler,
		Identity:          h.identityMiddleware,
		RateLimit:         rateLimit,
	})

	routes.SetupAdminRoutes(c.engine, &routes.AdminRouteConfig{
		OperatorHandler: h.operatorHandler,
		OperatorAuth:    h.operatorAuth,
		RateLimit:       rateLimit,
	})
}
