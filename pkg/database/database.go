package database

import (
	"fmt"
	"time"

	"library_catalog/pkg/config"
	"library_catalog/pkg/models"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the configured database, retrying while it comes up, and
// migrates the libros table.
func Open(cfg *config.Config) (*gorm.DB, error) {
	log := logger.New()

	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	var db *gorm.DB
	for i := 0; i < cfg.DBConnectRetries; i++ {
		db, err = gorm.Open(dialector, &gorm.Config{
			TranslateError: true,
			NowFunc:        models.Now,
			Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err == nil {
			break
		}
		log.Warn("database connection attempt failed", logger.Data{
			"attempt":      i + 1,
			"max_attempts": cfg.DBConnectRetries,
			"error":        err.Error(),
		})
		if i < cfg.DBConnectRetries-1 {
			time.Sleep(cfg.DBConnectRetryDelay)
		}
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	if err := Setup(db); err != nil {
		return nil, err
	}

	log.Info("database connection established", logger.Data{"driver": cfg.DBDriver})
	return db, nil
}

// Setup tunes the pool, pings and auto-migrates an already opened connection.
func Setup(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get database instance")
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return errors.Wrap(err, "database ping failed")
	}

	if err := db.AutoMigrate(&models.Book{}); err != nil {
		return errors.Wrap(err, "database migration failed")
	}
	return nil
}

func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return postgres.Open(PostgresDSN(cfg)), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.DBSQLitePath), nil
	default:
		return nil, errors.Errorf("driver %q has no sql dialector", cfg.DBDriver)
	}
}

func PostgresDSN(cfg *config.Config) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)
}
