package migration

import (
	"fmt"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"talenthub/internal/infrastructure/persistence/models"
	"talenthub/internal/shared/logger"
)

// Manager runs database migrations with an environment-appropriate strategy:
// gorm auto-migration in development, versioned SQL scripts elsewhere.
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

func NewManager(environment string) *Manager {
	var strategy Strategy

	switch strings.ToLower(environment) {
	case "development":
		strategy = NewGormAutoMigrateStrategy()
	default:
		scriptsPath, _ := filepath.Abs("./internal/infrastructure/migration/scripts")
		strategy = NewGolangMigrateStrategy(scriptsPath)
	}

	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().With("component", "migration.manager"),
	}
}

func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().With("component", "migration.manager"),
	}
}

func (m *Manager) Migrate(db *gorm.DB) error {
	models := AutoMigrateModels()
	m.logger.Infow("starting database migration",
		"strategy", m.strategy.GetName(),
		"models_count", len(models))

	if err := m.strategy.Migrate(db, models...); err != nil {
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed", "strategy", m.strategy.GetName())
	return nil
}

func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}

// AutoMigrateModels lists every persistence model covered by development
// auto-migration. Keep in sync with the SQL scripts.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.PlanModel{},
		&models.SubscriptionModel{},
		&models.UsageCounterModel{},
	}
}
