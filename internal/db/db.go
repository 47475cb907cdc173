// Package db opens the gorm connection for the configured engine and migrates the schema.
package db

import (
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/josephleon/leonweb/internal/config"
	"github.com/josephleon/leonweb/internal/db/dsn"
	"github.com/josephleon/leonweb/internal/db/models"
	"github.com/josephleon/leonweb/internal/logger/adapter/stdlogger"
)

// slowQuery is the threshold above which gorm logs a statement as slow.
const slowQuery = 500 * time.Millisecond

// Dialector returns the gorm dialector for the configured engine.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	source := dsn.Create(cfg)

	switch cfg.DB.Engine {
	case config.EngineMySQL:
		return gormmysql.Open(source), nil
	case config.EnginePostgres:
		return postgres.Open(source), nil
	case config.EngineSQLite, "":
		return sqlite.Open(source), nil
	default:
		return nil, config.ErrUnknownDBEngine
	}
}

// Open connects to the database and migrates all models.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	return OpenDialector(dialector, cfg.Log.LogSQL)
}

// OpenDialector opens the given dialector with the zerolog backed gorm logger and migrates.
func OpenDialector(dialector gorm.Dialector, logSQL bool) (*gorm.DB, error) {
	level := gormlogger.Warn
	if logSQL {
		level = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(
			stdlogger.NewComponent("gorm", zerolog.WarnLevel),
			gormlogger.Config{
				SlowThreshold:             slowQuery,
				LogLevel:                  level,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	if err = Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the tables of all models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}

	return nil
}
