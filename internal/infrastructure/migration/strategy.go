package migration

import (
	"database/sql"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"talenthub/internal/shared/logger"
)

// Strategy defines the interface for different migration strategies
type Strategy interface {
	// Migrate executes the migration strategy
	Migrate(db *gorm.DB, models ...interface{}) error
	// GetName returns the strategy name
	GetName() string
}

// GolangMigrateStrategy implements migration using golang-migrate
type GolangMigrateStrategy struct {
	scriptsPath string
	logger      logger.Interface
}

// NewGolangMigrateStrategy creates a new golang-migrate strategy
func NewGolangMigrateStrategy(scriptsPath string) Strategy {
	return &GolangMigrateStrategy{
		scriptsPath: scriptsPath,
		logger:      logger.NewLogger().With("component", "migration.golang-migrate"),
	}
}

func (s *GolangMigrateStrategy) Migrate(db *gorm.DB, models ...interface{}) error {
	s.logger.Infow("starting golang-migrate migration",
		"scripts_path", s.scriptsPath)

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	m, err := s.createMigrateInstance(sqlDB)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	currentVersion, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		s.logger.Errorw("failed to get current migration version", "error", err)
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	if dirty {
		s.logger.Warnw("database is in dirty state, please fix manually")
		return fmt.Errorf("database is in dirty state at version %d", currentVersion)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		s.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	finalVersion, _, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get final migration version: %w", err)
	}

	s.logger.Infow("migration completed successfully",
		"from_version", currentVersion,
		"to_version", finalVersion)

	return nil
}

func (s *GolangMigrateStrategy) GetName() string {
	return "golang_migrate"
}

func (s *GolangMigrateStrategy) createMigrateInstance(sqlDB *sql.DB) (*migrate.Migrate, error) {
	driver, err := mysql.WithInstance(sqlDB, &mysql.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create MySQL driver: %w", err)
	}

	sourceURL := fmt.Sprintf("file://%s", s.scriptsPath)
	m, err := migrate.NewWithDatabaseInstance(sourceURL, "mysql", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return m, nil
}

// MigrateDown executes down migrations for the given number of steps
func (s *GolangMigrateStrategy) MigrateDown(db *gorm.DB, steps int) error {
	s.logger.Infow("starting down migration", "steps", steps)

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	m, err := s.createMigrateInstance(sqlDB)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Steps(-steps); err != nil && err != migrate.ErrNoChange {
		s.logger.Errorw("down migration failed", "error", err)
		return fmt.Errorf("failed to run down migrations: %w", err)
	}

	s.logger.Infow("down migration completed successfully")
	return nil
}

// Force sets the database migration version and clears the dirty flag
func (s *GolangMigrateStrategy) Force(db *gorm.DB, version int) error {
	s.logger.Infow("forcing migration version", "version", version)

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	m, err := s.createMigrateInstance(sqlDB)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Force(version); err != nil {
		s.logger.Errorw("force migration failed", "error", err)
		return fmt.Errorf("failed to force version: %w", err)
	}

	return nil
}

// GooseStrategy implements migration using goose, used for environments
// where migrations ship embedded in the deploy artifact.
type GooseStrategy struct {
	scriptsPath string
	logger      logger.Interface
}

func NewGooseStrategy(scriptsPath string) Strategy {
	return &GooseStrategy{
		scriptsPath: scriptsPath,
		logger:      logger.NewLogger().With("component", "migration.goose"),
	}
}

func (s *GooseStrategy) Migrate(db *gorm.DB, models ...interface{}) error {
	s.logger.Infow("starting goose migration",
		"scripts_path", s.scriptsPath)

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	currentVersion, err := goose.GetDBVersion(sqlDB)
	if err != nil {
		s.logger.Errorw("failed to get current version", "error", err)
		return fmt.Errorf("failed to get current version: %w", err)
	}

	if err := goose.Up(sqlDB, s.scriptsPath); err != nil {
		s.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	finalVersion, err := goose.GetDBVersion(sqlDB)
	if err != nil {
		return fmt.Errorf("failed to get final version: %w", err)
	}

	s.logger.Infow("migration completed successfully",
		"from_version", currentVersion,
		"to_version", finalVersion)

	return nil
}

func (s *GooseStrategy) GetName() string {
	return "goose"
}

func (s *GooseStrategy) MigrateDown(db *gorm.DB, steps int) error {
	s.logger.Infow("starting down migration", "steps", steps)

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	for i := 0; i < steps; i++ {
		if err := goose.Down(sqlDB, s.scriptsPath); err != nil {
			s.logger.Errorw("down migration failed", "error", err)
			return fmt.Errorf("failed to run down migration: %w", err)
		}
	}

	return nil
}

func (s *GooseStrategy) Status(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Status(sqlDB, s.scriptsPath); err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}

	return nil
}

func (s *GooseStrategy) Create(name string) error {
	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Create(nil, s.scriptsPath, name, "sql"); err != nil {
		return fmt.Errorf("failed to create migration: %w", err)
	}

	s.logger.Infow("migration created successfully", "name", name)
	return nil
}

// GormAutoMigrateStrategy lets gorm derive the schema from the models,
// intended for development only.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy() Strategy {
	return &GormAutoMigrateStrategy{
		logger: logger.NewLogger().With("component", "migration.gorm"),
	}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, models ...interface{}) error {
	s.logger.Infow("starting gorm auto-migration", "models", len(models))

	if err := db.AutoMigrate(models...); err != nil {
		s.logger.Errorw("auto-migration failed", "error", err)
		return fmt.Errorf("failed to auto-migrate: %w", err)
	}

	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}
