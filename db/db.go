package db

import (
	"strings"

	"annotator/config"
	"annotator/models"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/sirupsen/logrus"
)

// Connect opens the database from cfg.DatabaseURL and runs the automigrate.
// Postgres in any real deployment; a sqlite3: URL is accepted for local runs.
func Connect(cfg config.Configuration) (*gorm.DB, error) {
	dialect := "postgres"
	source := cfg.DatabaseURL
	if strings.HasPrefix(source, "sqlite3:") {
		dialect = "sqlite3"
		source = strings.TrimPrefix(source, "sqlite3:")
	}

	database, err := gorm.Open(dialect, source)
	if err != nil {
		return nil, err
	}

	database.LogMode(cfg.Env == config.EnvDevelopment)
	logrus.WithField("dialect", dialect).Info("database connected")

	if err := AutoMigrate(database); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

func AutoMigrate(database *gorm.DB) error {
	return database.AutoMigrate(
		&models.User{},
		&models.Extraction{},
		&models.Annotation{},
		&models.Record{},
	).Error
}
