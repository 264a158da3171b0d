package db

import (
	"fmt"

	"cleverplus/internal/config"
	"cleverplus/pkg/models"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase creates a new database connection
func NewDatabase(cfg *config.DBConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Error),
		TranslateError: true,
	}

	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// AutoMigrate runs database migrations using GORM
func AutoMigrate(db *gorm.DB) error {
	log.Info().Msg("Running GORM AutoMigrate...")

	if err := db.AutoMigrate(models.GetAllModels()...); err != nil {
		return fmt.Errorf("failed to run GORM AutoMigrate: %w", err)
	}

	if err := createCustomIndexes(db); err != nil {
		log.Warn().Err(err).Msg("Failed to create some custom indexes")
	}

	log.Info().Msg("GORM AutoMigrate completed successfully")
	return nil
}

// createCustomIndexes creates any indexes that GORM might not handle. The
// declared model indexes are load-bearing: the unique (tenant_id, email)
// index IS the user uniqueness invariant, and the tenant-prefixed composites
// back every scoped access path.
func createCustomIndexes(db *gorm.DB) error {
	indexes := []string{
		// Slug lookups happen on every tenant resolution; keep the
		// partial active index hot.
		`CREATE INDEX IF NOT EXISTS ix_tenants_active_slug ON tenants (slug) WHERE is_active = true`,

		// Terminal-state analytics: resolution reporting scans closed
		// conversations per tenant by close time.
		`CREATE INDEX IF NOT EXISTS ix_conversations_tenant_closed ON conversations (tenant_id, closed_at) WHERE closed_at IS NOT NULL`,

		// AI quality reporting reads only rated assistant messages.
		`CREATE INDEX IF NOT EXISTS ix_messages_tenant_feedback ON messages (tenant_id, user_feedback) WHERE user_feedback IS NOT NULL`,
	}

	for _, idx := range indexes {
		if err := db.Exec(idx).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// RunMigrations is the main migration function called from main.go
func RunMigrations(db *gorm.DB) error {
	log.Info().Msg("Starting database migrations...")

	if err := AutoMigrate(db); err != nil {
		return fmt.Errorf("AutoMigrate failed: %w", err)
	}

	log.Info().Msg("All migrations completed successfully")
	return nil
}
