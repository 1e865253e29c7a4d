package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"talenthub/internal/infrastructure/config"
	"talenthub/internal/infrastructure/database"
	"talenthub/internal/infrastructure/migration"
	httpRouter "talenthub/internal/interfaces/http"
	"talenthub/internal/shared/biztime"
	"talenthub/internal/shared/logger"
)

var (
	env         string
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the TalentHub entitlement server with the specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Automatically run database migrations on startup (not recommended for production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = mapEnvToGinMode(env)

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log := logger.NewLogger()
	log.Infow("starting server", "environment", env, "auto_migrate", autoMigrate)

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard

	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalw("failed to initialize database", "error", err)
	}
	defer database.Close()

	if autoMigrate {
		if env == "production" {
			log.Warnw("auto-migration is enabled in production environment - this is not recommended!")
		}
		manager := migration.NewManager(env)
		if err := manager.Migrate(database.Get()); err != nil {
			log.Fatalw("auto-migration failed", "error", err)
		}
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatalw("failed to connect to redis", "error", err)
		}
		log.Infow("redis connection established")
	}

	router := httpRouter.NewRouter(database.Get(), redisClient, cfg, log)
	router.SetupRoutes()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.GetEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "address", cfg.Server.GetAddr(), "mode", cfg.Server.Mode)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
