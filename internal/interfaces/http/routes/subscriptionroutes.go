package routes

import (
	"github.com/gin-gonic/gin"

	"talenthub/internal/interfaces/http/handlers"
	"talenthub/internal/interfaces/http/middleware"
)

// SubscriptionRouteConfig holds dependencies for subscription routes.
type SubscriptionRouteConfig struct {
	SubscriptionHandler *handlers.SubscriptionHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// SetupSubscriptionRoutes configures subscription routes.
func SetupSubscriptionRoutes(group *gin.RouterGroup, cfg *SubscriptionRouteConfig) {
	subscriptions := group.Group("/subscriptions")
	subscriptions.Use(cfg.AuthMiddleware.RequireAuth())
	{
		subscriptions.POST("", cfg.SubscriptionHandler.CreateSubscription)
		subscriptions.GET("", cfg.SubscriptionHandler.ListMySubscriptions)
		subscriptions.GET("/active", cfg.SubscriptionHandler.GetActiveSubscription)
		subscriptions.POST("/:sid/cancel", cfg.SubscriptionHandler.CancelSubscription)
		subscriptions.POST("/:sid/renew", cfg.SubscriptionHandler.RenewSubscription)
		subscriptions.GET("/:sid/usage", cfg.SubscriptionHandler.GetUsage)
	}
}
