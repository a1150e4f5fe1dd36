package configs

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	log "github.com/sirupsen/logrus"
)

const (
	StoreTypeFile   = "file"
	StoreTypeShared = "shared"
	StoreTypeRedis  = "redis"
)

type Config struct {
	// Directory holding settings.json when StoreType is "file"
	DataDir  string `env:"PICDISK_DATA_DIR" envDefault:"."`
	LogLevel string `env:"PICDISK_LOG_LEVEL" envDefault:"info"`

	// One of "file", "shared" (SQL database via gorm) or "redis"
	StoreType string `env:"PICDISK_STORE_TYPE" envDefault:"file"`

	DatabaseDSN             string `env:"PICDISK_DATABASE_DSN" envDefault:"picdisk.db"`
	DatabaseType            string `env:"PICDISK_DATABASE_TYPE" envDefault:"sqlite"`
	DatabaseConnectAttempts int    `env:"PICDISK_DATABASE_CONNECT_ATTEMPTS" envDefault:"5"`

	RedisURL       string `env:"PICDISK_REDIS_URL"`
	RedisKeyPrefix string `env:"PICDISK_REDIS_KEY_PREFIX" envDefault:"picdisk"`

	Host                 string        `env:"PICDISK_HOST"`
	Port                 int           `env:"PICDISK_PORT" envDefault:"3000"`
	ServerRequestTimeout time.Duration `env:"PICDISK_SERVER_REQUEST_TIMEOUT" envDefault:"60s"`
}

// Parse parses environment variables to a valid Config.
func Parse() (*Config, error) {
	cfg := Config{}

	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}

	switch cfg.StoreType {
	case StoreTypeFile, StoreTypeShared:
	case StoreTypeRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("store type set to redis but PICDISK_REDIS_URL is empty")
		}
	default:
		return nil, fmt.Errorf("store type '%s' not supported", cfg.StoreType)
	}

	if cfg.DatabaseConnectAttempts < 1 {
		cfg.DatabaseConnectAttempts = 1
	}

	return &cfg, nil
}

// ConfigureLogger sets the level of the standard logrus logger. Unknown
// levels fall back to info.
func ConfigureLogger(level string) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.WithFields(log.Fields{"level": level}).Warn("Invalid log level, using info")
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}
