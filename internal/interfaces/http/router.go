package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	entusecases "talenthub/internal/application/entitlement/usecases"
	subusecases "talenthub/internal/application/subscription/usecases"
	"talenthub/internal/infrastructure/auth"
	"talenthub/internal/infrastructure/cache"
	"talenthub/internal/infrastructure/config"
	"talenthub/internal/infrastructure/repository"
	"talenthub/internal/interfaces/http/handlers"
	"talenthub/internal/interfaces/http/middleware"
	"talenthub/internal/interfaces/http/routes"
	"talenthub/internal/shared/logger"
	"talenthub/internal/shared/utils"
)

// Router wires repositories, use cases and handlers into a gin engine.
type Router struct {
	engine              *gin.Engine
	planHandler         *handlers.PlanHandler
	subscriptionHandler *handlers.SubscriptionHandler
	entitlementHandler  *handlers.EntitlementHandler
	authMiddleware      *middleware.AuthMiddleware
	allowedOrigins      []string
	logger              logger.Interface
}

// NewRouter creates the HTTP router with all dependencies. redisClient may
// be nil, in which case the plan catalog is served without a cache.
func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()
	handlers.RegisterCustomValidators()

	planRepo := repository.NewPlanRepository(db, log)
	subscriptionRepo := repository.NewSubscriptionRepository(db, log)
	usageRepo := repository.NewUsageCounterRepository(db, log)

	var catalogCache subusecases.PlanCatalogCache
	if redisClient != nil {
		catalogCache = cache.NewRedisPlanCatalogCache(redisClient, log)
	}

	ledger := subusecases.NewLedger(subscriptionRepo, log)

	planHandler := handlers.NewPlanHandler(
		subusecases.NewCreatePlanUseCase(planRepo, catalogCache, log),
		subusecases.NewUpdatePlanUseCase(planRepo, catalogCache, log),
		subusecases.NewGetPlanUseCase(planRepo, log),
		subusecases.NewListPlansUseCase(planRepo, log),
		subusecases.NewListActivePlansUseCase(planRepo, catalogCache, log),
		subusecases.NewActivatePlanUseCase(planRepo, catalogCache, log),
		subusecases.NewDeactivatePlanUseCase(planRepo, catalogCache, log),
		log,
	)

	subscriptionHandler := handlers.NewSubscriptionHandler(
		subusecases.NewCreateSubscriptionUseCase(subscriptionRepo, planRepo, log),
		subusecases.NewCancelSubscriptionUseCase(subscriptionRepo, log),
		subusecases.NewRenewSubscriptionUseCase(subscriptionRepo, planRepo, ledger, log),
		subusecases.NewGetActiveSubscriptionUseCase(ledger, planRepo, log),
		subusecases.NewListUserSubscriptionsUseCase(subscriptionRepo, planRepo, log),
		subusecases.NewGetUsageUseCase(subscriptionRepo, planRepo, usageRepo, log),
		log,
	)

	entitlementHandler := handlers.NewEntitlementHandler(
		entusecases.NewAuthorizeFeatureUseCase(ledger, planRepo, usageRepo, log),
		log,
	)

	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenMinutes)
	authMiddleware := middleware.NewAuthMiddleware(jwtSvc, log)

	return &Router{
		engine:              engine,
		planHandler:         planHandler,
		subscriptionHandler: subscriptionHandler,
		entitlementHandler:  entitlementHandler,
		authMiddleware:      authMiddleware,
		allowedOrigins:      cfg.Server.AllowedOrigins,
		logger:              log,
	}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(r.allowedOrigins))

	r.engine.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, 200, "", gin.H{"status": "ok"})
	})

	v1 := r.engine.Group("/api/v1")

	routes.SetupPlanRoutes(v1, &routes.PlanRouteConfig{
		PlanHandler:    r.planHandler,
		AuthMiddleware: r.authMiddleware,
	})

	routes.SetupSubscriptionRoutes(v1, &routes.SubscriptionRouteConfig{
		SubscriptionHandler: r.subscriptionHandler,
		AuthMiddleware:      r.authMiddleware,
	})

	routes.SetupEntitlementRoutes(v1, &routes.EntitlementRouteConfig{
		EntitlementHandler: r.entitlementHandler,
		AuthMiddleware:     r.authMiddleware,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}