package routes

import (
	"github.com/gin-gonic/gin"

	"talenthub/internal/interfaces/http/handlers"
	"talenthub/internal/interfaces/http/middleware"
)

// PlanRouteConfig holds dependencies for plan routes.
type PlanRouteConfig struct {
	PlanHandler    *handlers.PlanHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupPlanRoutes configures plan routes.
func SetupPlanRoutes(group *gin.RouterGroup, cfg *PlanRouteConfig) {
	plans := group.Group("/plans")
	{
		// Public catalog, no authentication required
		plans.GET("/public", cfg.PlanHandler.ListActivePlans)

		plansProtected := plans.Group("")
		plansProtected.Use(cfg.AuthMiddleware.RequireAuth())
		{
			plansProtected.GET("/:sid", cfg.PlanHandler.GetPlan)
		}

		plansAdmin := plans.Group("")
		plansAdmin.Use(cfg.AuthMiddleware.RequireAuth())
		plansAdmin.Use(cfg.AuthMiddleware.RequireAdmin())
		{
			plansAdmin.GET("", cfg.PlanHandler.ListPlans)
			plansAdmin.POST("", cfg.PlanHandler.CreatePlan)
			plansAdmin.PUT("/:sid", cfg.PlanHandler.UpdatePlan)
			plansAdmin.PATCH("/:sid/status", cfg.PlanHandler.UpdatePlanStatus)
		}
	}
}
