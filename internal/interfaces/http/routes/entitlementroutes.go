package routes

import (
	"github.com/gin-gonic/gin"

	"talenthub/internal/interfaces/http/handlers"
	"talenthub/internal/interfaces/http/middleware"
)

// EntitlementRouteConfig holds dependencies for entitlement routes.
type EntitlementRouteConfig struct {
	EntitlementHandler *handlers.EntitlementHandler
	AuthMiddleware     *middleware.AuthMiddleware
}

// SetupEntitlementRoutes configures entitlement routes.
func SetupEntitlementRoutes(group *gin.RouterGroup, cfg *EntitlementRouteConfig) {
	entitlements := group.Group("/entitlements")
	entitlements.Use(cfg.AuthMiddleware.RequireAuth())
	{
		entitlements.POST("/authorize", cfg.EntitlementHandler.Authorize)
	}
}
