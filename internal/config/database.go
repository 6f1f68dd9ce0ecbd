package config

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alfredoptarigan/resume-ats-checker/internal/models"
)

// InitDatabase opens the Postgres pool, sizes it for the comparison workers and
// migrates the document and comparison tables.
func InitDatabase(cfg *Config) (*gorm.DB, error) {
	gormLogger := logger.Default.LogMode(logger.Silent)
	if cfg.Server.Env == "development" {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(postgres.Open(cfg.GetDatabaseDSN()), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database %s: %w", cfg.Database.DBName, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	maxOpen := poolSize(cfg)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxOpen / 2)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	log.Printf("✅ Database connected (pool of %d)\n", maxOpen)

	if err := db.AutoMigrate(&models.Document{}, &models.Comparison{}); err != nil {
		return nil, fmt.Errorf("failed to migrate documents and comparisons: %w", err)
	}

	log.Println("✅ Database migration completed")

	return db, nil
}

// poolSize gives every worker a connection plus headroom for the poller, the
// upload sweeper and HTTP handlers.
func poolSize(cfg *Config) int {
	if cfg.Database.MaxOpenConns > 0 {
		return cfg.Database.MaxOpenConns
	}
	return cfg.Worker.Concurrency + 4
}
