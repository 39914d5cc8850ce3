package routes

import (
	"github.com/gin-gonic/gin"

	"warden/internal/interfaces/http/handlers"
	"warden/internal/interfaces/http/middleware"
)

// AdminRouteConfig holds dependencies for the operator console.
type AdminRouteConfig struct {
	OperatorHandler *handlers.OperatorHandler
	OperatorAuth    *middleware.OperatorAuthMiddleware
	RateLimit       gin.HandlerFunc
}

// SetupAdminRoutes configures /api/admin. Everything but login needs an
// operator JWT.
func SetupAdminRoutes(engine *gin.Engine, cfg *AdminRouteConfig) {
	engine.POST("/api/admin/login", cfg.RateLimit, cfg.OperatorHandler.Login)

	admin := engine.Group("/api/admin")
	admin.Use(cfg.OperatorAuth.RequireOperator())
	{
		admin.GET("/licenses", cfg.OperatorHandler.ListLicenses)
		admin.POST("/licenses", cfg.OperatorHandler.IssueLicense)
		admin.PUT("/licenses/:key", cfg.OperatorHandler.UpdateLicense)
		admin.DELETE("/licenses/:key", cfg.OperatorHandler.DeleteLicense)

		admin.GET("/customers", cfg.OperatorHandler.ListCustomers)
		admin.POST("/customers", cfg.OperatorHandler.CreateCustomer)
	}
}
