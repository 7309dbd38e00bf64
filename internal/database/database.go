package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"attune/internal/config"
	logging "attune/internal/logging"
	"attune/internal/models"
)

var DB *gorm.DB

func Init(log *zap.Logger) {
	var err error
	dbConf := config.Conf.Database
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		dbConf.Host, dbConf.User, dbConf.Password, dbConf.DBName, dbConf.Port)

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logging.NewGormZapLogger(log),
	})

	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	log.Info("Database connection established successfully.")
	runMigrations(log)
}

func runMigrations(log *zap.Logger) {
	// GORM's AutoMigrate will create tables, columns, and foreign keys.
	// It will NOT create custom indexes, so we handle that separately.
	err := DB.AutoMigrate(
		&models.ObservationWindow{},
		&models.WindowFeatureRow{},
		&models.Prediction{},
	)
	if err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}
	log.Info("Database migrations completed successfully.")

	// The timeline and export queries walk the feature store by session and
	// recency.
	featureIndex := `CREATE INDEX IF NOT EXISTS idx_feature_rows_query ON window_feature_rows (session_id, created_at DESC);`
	if err := DB.Exec(featureIndex).Error; err != nil {
		log.Fatal("Failed to create custom index on feature store", zap.Error(err))
	}
	log.Info("Custom indexes ensured successfully.")
}
