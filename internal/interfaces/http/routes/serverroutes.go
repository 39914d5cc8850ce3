package routes

import (
	"github.com/gin-gonic/gin"

	"warden/internal/infrastructure/permission"
	"warden/internal/interfaces/http/handlers"
	"warden/internal/interfaces/http/middleware"
)

// ServerRouteConfig holds dependencies for the agent-facing routes.
type ServerRouteConfig struct {
	LicenseHandler *handlers.LicenseHandler
	ServerHandler  *handlers.ServerHandler
	BanHandler     *handlers.BanHandler
	Identity       *middleware.IdentityMiddleware
	RateLimit      gin.HandlerFunc
}

// SetupServerRoutes configures /api/license and /api/server. Agents carry
// no token; only the authorized unban needs one.
func SetupServerRoutes(engine *gin.Engine, cfg *ServerRouteConfig) {
	engine.POST("/api/license/verify", cfg.RateLimit, cfg.LicenseHandler.Verify)

	server := engine.Group("/api/server")
	{
		server.POST("/heartbeat", cfg.ServerHandler.Heartbeat)
		server.GET("/players/:license", cfg.ServerHandler.Players)
		server.GET("/status/:license", cfg.ServerHandler.Status)
		server.GET("/actions/:license", cfg.ServerHandler.Actions)
		server.GET("/settings/:license", cfg.ServerHandler.Settings)

		server.POST("/log", cfg.ServerHandler.IngestLog)
		server.GET("/logs/:license", cfg.ServerHandler.Logs)

		server.POST("/ban", cfg.BanHandler.Create)
		server.POST("/ban/check", cfg.BanHandler.Check)
		server.POST("/ban/evidence", cfg.BanHandler.Evidence)
		server.GET("/bans/:license", cfg.BanHandler.List)
		server.DELETE("/unban/:banId",
			cfg.Identity.RequirePermission(permission.ResourceBan, permission.ActionLift),
			cfg.BanHandler.Unban)
		// Answers 403 unless server.legacy_unban is set.
		server.DELETE("/ban/:banId", cfg.BanHandler.LegacyUnban)
	}
}
