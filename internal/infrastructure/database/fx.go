package database

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/Conte777/MinaAlerts/config"
	"github.com/Conte777/MinaAlerts/internal/infrastructure/logger"
)

// Module provides database components for fx dependency injection
var Module = fx.Module("database",
	fx.Provide(NewPostgresDBWithLifecycle),
)

// NewPostgresDBWithLifecycle connects, migrates and closes the pool on shutdown
func NewPostgresDBWithLifecycle(
	lc fx.Lifecycle,
	cfg *config.DatabaseConfig,
	logCfg *config.LoggingConfig,
	log zerolog.Logger,
) (*gorm.DB, error) {
	db, err := NewPostgresDB(cfg, logger.GormLevel(logCfg.Level))
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(sqlDB, cfg.Name); err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			log.Info().Msg("Closing database connection")
			return sqlDB.Close()
		},
	})

	log.Info().
		Str("host", cfg.Host).
		Str("port", cfg.Port).
		Str("database", cfg.Name).
		Msg("Database connected and migrations completed")

	return db, nil
}
