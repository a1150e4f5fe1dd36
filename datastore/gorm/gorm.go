package gorm

import (
	"fmt"
	"time"

	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/jpillora/backoff"
	"github.com/picdiskslimmer/picdisk/configs"
	"github.com/picdiskslimmer/picdisk/migrations"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New opens the configured database, retrying with backoff, and runs all
// pending migrations.
func New(cfg *configs.Config) (*gorm.DB, error) {
	d, err := dialector(cfg.DatabaseType, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	options := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	b := &backoff.Backoff{
		Min:    100 * time.Millisecond,
		Max:    10 * time.Second,
		Factor: 2,
		Jitter: true,
	}

	var db *gorm.DB
	for {
		db, err = gorm.Open(d, options)
		if err == nil {
			break
		}

		attempt := int(b.Attempt()) + 1
		if attempt >= cfg.DatabaseConnectAttempts {
			return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", attempt, err)
		}

		wait := b.Duration()
		log.
			WithFields(log.Fields{"attempt": attempt, "wait": wait, "error": err}).
			Warn("Database connection failed, retrying")
		time.Sleep(wait)
	}

	m := gormigrate.New(db, gormigrate.DefaultOptions, migrations.List())
	if err := m.Migrate(); err != nil {
		Close(db)
		return nil, fmt.Errorf("error while migrating database: %w", err)
	}

	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Warnf("Unable to close database: %s", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Warnf("Unable to close database: %s", err)
	}
}
