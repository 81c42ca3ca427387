package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "PRICING"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Catalog      CatalogConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PRICING_APP_ENV" required:"true"`
	Port         string `envconfig:"PRICING_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"PRICING_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PRICING_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"PRICING_DB_DSN"`

	Host     string `envconfig:"PRICING_DB_HOST"`
	Port     int    `envconfig:"PRICING_DB_PORT" default:"5432"`
	User     string `envconfig:"PRICING_DB_USER"`
	Password string `envconfig:"PRICING_DB_PASSWORD"`
	Name     string `envconfig:"PRICING_DB_NAME"`
	SSLMode  string `envconfig:"PRICING_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PRICING_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PRICING_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PRICING_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PRICING_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// ensureDSN backfills DSN from the discrete host settings when it is not set
// explicitly.
func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("either PRICING_DB_DSN or PRICING_DB_HOST/USER/NAME must be set")
	}
	d.DSN = fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"PRICING_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PRICING_REDIS_ADDR"`
	Password     string        `envconfig:"PRICING_REDIS_PASSWORD"`
	DB           int           `envconfig:"PRICING_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PRICING_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PRICING_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PRICING_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PRICING_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PRICING_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CatalogConfig struct {
	// Interval controls how often the catalog worker regenerates price
	// snapshots. Storefront reads tolerate staleness up to this window.
	Interval time.Duration `envconfig:"PRICING_CATALOG_INTERVAL" default:"15m"`
	LockTTL  time.Duration `envconfig:"PRICING_CATALOG_LOCK_TTL" default:"30m"`
	CacheTTL time.Duration `envconfig:"PRICING_CATALOG_CACHE_TTL" default:"1h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"PRICING_FEATURE_AUTO_MIGRATE" default:"false"`
}
