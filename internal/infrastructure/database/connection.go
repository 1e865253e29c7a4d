package database

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"talenthub/internal/shared/config"
	appLogger "talenthub/internal/shared/logger"
)

var (
	db   *gorm.DB
	dbMu sync.RWMutex
)

// Init initializes the database connection.
func Init(cfg *config.DatabaseConfig) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&collation=utf8mb4_general_ci&parseTime=true&loc=UTC",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database)

	gormLogger := logger.New(
		&filteredLogger{},
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	database, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       dsn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:      gormLogger,
		PrepareStmt: true,
		// TranslateError turns driver duplicate-key errors into
		// gorm.ErrDuplicatedKey, which the subscription repository relies
		// on for its one-active-per-line guard.
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	dbMu.Lock()
	db = database
	dbMu.Unlock()

	appLogger.Info("database connection established",
		"database", cfg.Database)

	return nil
}

// Get returns the database connection
func Get() *gorm.DB {
	dbMu.RLock()
	defer dbMu.RUnlock()
	return db
}

// Close closes the database connection
func Close() error {
	dbMu.RLock()
	currentDB := db
	dbMu.RUnlock()

	if currentDB == nil {
		return nil
	}

	sqlDB, err := currentDB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	appLogger.Info("database connection closed")
	return nil
}

// filteredLogger routes gorm's log output through the application logger
// and drops schema validation noise.
type filteredLogger struct{}

func (l *filteredLogger) Printf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)

	if strings.Contains(strings.ToLower(msg), "information_schema.schemata") ||
		strings.Contains(strings.ToLower(msg), "select version()") {
		return
	}

	if strings.Contains(msg, "[error]") || strings.Contains(msg, "ERROR") {
		appLogger.Error("database error", "details", msg)
	} else if strings.Contains(msg, "slow sql") || strings.Contains(msg, "SLOW SQL") {
		appLogger.Warn("slow query", "details", msg)
	} else {
		appLogger.Debug("database query", "details", msg)
	}
}
