package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/onegreenvn/phishing-campaign-service/internal/config"
	"github.com/onegreenvn/phishing-campaign-service/internal/models"
)

// InitDB initializes the database connection and performs migrations
func InitDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	if cfg.Host == "" || cfg.User == "" || cfg.Name == "" {
		return nil, fmt.Errorf("missing required database settings. Please check DB_HOST, DB_USER and DB_NAME")
	}

	// Configure GORM logger
	gormLogger := logger.New(
		logrus.StandardLogger(),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Error,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	// gen_random_uuid() lives in pgcrypto before Postgres 13
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS pgcrypto").Error; err != nil {
		return nil, fmt.Errorf("failed to enable pgcrypto extension: %w", err)
	}

	if err := db.AutoMigrate(&models.Campaign{}, &models.CampaignRun{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// A recurring campaign must never count more runs than its quota
	err = db.Exec(`
		DO $$ BEGIN
			IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_campaigns_runs_within_quota') THEN
				ALTER TABLE campaigns ADD CONSTRAINT chk_campaigns_runs_within_quota
				CHECK (NOT is_recurring OR runs_executed <= total_campaign_count);
			END IF;
		END $$;
	`).Error
	if err != nil {
		logrus.Warnf("Failed to add runs quota constraint: %v", err)
	}

	logrus.Info("Database connection established and migrations completed")
	return db, nil
}
