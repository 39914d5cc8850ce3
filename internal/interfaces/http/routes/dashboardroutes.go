package routes

import (
	"github.com/gin-gonic/gin"

	"warden/internal/infrastructure/permission"
	"warden/internal/interfaces/http/handlers"
	"warden/internal/interfaces/http/middleware"
)

// DashboardRouteConfig holds dependencies for owner and admin routes.
type DashboardRouteConfig struct {
	DashboardHandler  *handlers.DashboardHandler
	CustomerHandler   *handlers.CustomerHandler
	PanelAdminHandler *handlers.PanelAdminHandler
	Identity          *middleware.IdentityMiddleware
	RateLimit         gin.HandlerFunc
}

// SetupDashboardRoutes configures the customer, dashboard and panel admin
// routes.
func SetupDashboardRoutes(engine *gin.Engine, cfg *DashboardRouteConfig) {
	guard := cfg.Identity.RequirePermission

	engine.POST("/api/login", cfg.RateLimit, cfg.CustomerHandler.Login)

	customer := engine.Group("/api/customer")
	{
		customer.GET("/dashboard",
			guard(permission.ResourceLicense, permission.ActionRead),
			cfg.CustomerHandler.Dashboard)
		customer.POST("/toggle",
			guard(permission.ResourceLicense, permission.ActionToggle),
			cfg.CustomerHandler.Toggle)
	}

	dashboard := engine.Group("/api/dashboard")
	{
		dashboard.POST("/action",
			guard(permission.ResourceCommand, permission.ActionPush),
			cfg.DashboardHandler.Action)
		dashboard.GET("/settings",
			guard(permission.ResourceSettings, permission.ActionRead),
			cfg.DashboardHandler.GetSettings)
		dashboard.PUT("/settings",
			guard(permission.ResourceSettings, permission.ActionWrite),
			cfg.DashboardHandler.PutSettings)
	}

	engine.POST("/api/panel/admins/login", cfg.RateLimit, cfg.PanelAdminHandler.Login)

	admins := engine.Group("/api/panel/admins")
	admins.Use(guard(permission.ResourceAdmins, permission.ActionManage))
	{
		admins.GET("", cfg.PanelAdminHandler.List)
		admins.POST("", cfg.PanelAdminHandler.Create)
		admins.PUT("/:id", cfg.PanelAdminHandler.Update)
		admins.DELETE("/:id", cfg.PanelAdminHandler.Delete)
	}
}
