package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"spendsmart/internal/logger"
	"spendsmart/internal/models"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Models lists every table the API persists, in creation order.
var Models = []interface{}{
	&models.Expense{},
	&models.Budget{},
	&models.AuditLog{},
}

// Manager handles database operations
type Manager struct {
	db     *gorm.DB
	config *Config
}

// NewManager opens the configured database and sizes its connection pool
func NewManager(config *Config) (*Manager, error) {
	var dialector gorm.Dialector
	switch config.Driver {
	case "postgres":
		dialector = postgres.New(postgres.Config{
			DSN:                  config.DSN(),
			PreferSimpleProtocol: true,
		})
	case "sqlite":
		dialector = sqlite.Open(config.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", config.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &Manager{db: db, config: config}, nil
}

// NewMigrator builds a golang-migrate instance over the SQL files in the
// configured migrations directory. Only PostgreSQL is supported.
func (m *Manager) NewMigrator() (*migrate.Migrate, error) {
	if m.config.Driver != "postgres" {
		return nil, fmt.Errorf("SQL migrations require postgres, got %q", m.config.Driver)
	}
	mig, err := migrate.New("file://"+m.config.MigrationsPath, m.config.MigrateURL())
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return mig, nil
}

// CloseMigrator releases a migrate instance, logging close failures.
func CloseMigrator(mig *migrate.Migrate) {
	srcErr, dbErr := mig.Close()
	if srcErr != nil {
		logger.Get().Warnf("migrate source close error: %v", srcErr)
	}
	if dbErr != nil {
		logger.Get().Warnf("migrate database close error: %v", dbErr)
	}
}

// RunMigrations brings the schema up to date. PostgreSQL applies the
// versioned SQL migrations; SQLite is auto-migrated from the models.
func (m *Manager) RunMigrations() error {
	logger.Get().Infow("Running database migrations...", "driver", m.config.Driver)

	if m.config.Driver == "sqlite" {
		if err := m.db.AutoMigrate(Models...); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		logger.Get().Info("Database migrations completed successfully")
		return nil
	}

	mig, err := m.NewMigrator()
	if err != nil {
		return err
	}
	defer CloseMigrator(mig)

	if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Get().Info("Database migrations completed successfully")
	return nil
}

// Ping checks that the database answers within ctx.
func (m *Manager) Ping(ctx context.Context) error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the connection pool.
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Config returns the configuration the manager was opened with.
func (m *Manager) Config() *Config {
	return m.config
}
