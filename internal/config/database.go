package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	databaseDriverEnv          = "DATABASE_DRIVER"
	databaseURLEnv             = "DATABASE_URL"
	databaseMaxOpenConnsEnv    = "DATABASE_MAX_OPEN_CONNS"
	databaseMaxIdleConnsEnv    = "DATABASE_MAX_IDLE_CONNS"
	databaseConnMaxLifetimeEnv = "DATABASE_CONN_MAX_LIFETIME"
	databaseSlowQueryEnv       = "DATABASE_SLOW_QUERY_THRESHOLD"
	databaseAutoMigrateEnv     = "DATABASE_AUTO_MIGRATE"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultDatabaseDriver     = DriverSQLite
	defaultSQLitePath         = "vault.db"
	defaultMaxOpenConns       = 10
	defaultMaxIdleConns       = 5
	defaultConnMaxLifetime    = 30 * time.Minute
	defaultSlowQueryThreshold = 200 * time.Millisecond
)

type DatabaseConfig struct {
	Driver             string
	DSN                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetime    time.Duration
	SlowQueryThreshold time.Duration
	AutoMigrate        bool
}

func LoadDatabaseConfig() (*DatabaseConfig, error) {
	driver := strings.ToLower(os.Getenv(databaseDriverEnv))
	if driver == "" {
		driver = defaultDatabaseDriver
	}

	dsn := os.Getenv(databaseURLEnv)
	if dsn == "" && driver == DriverSQLite {
		dsn = defaultSQLitePath
	}

	maxOpen := defaultMaxOpenConns
	if v := os.Getenv(databaseMaxOpenConnsEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			maxOpen = parsed
		}
	}

	maxIdle := defaultMaxIdleConns
	if v := os.Getenv(databaseMaxIdleConnsEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			maxIdle = parsed
		}
	}

	lifetime, err := durationFromEnv(databaseConnMaxLifetimeEnv, defaultConnMaxLifetime)
	if err != nil {
		return nil, err
	}

	slowQuery, err := durationFromEnv(databaseSlowQueryEnv, defaultSlowQueryThreshold)
	if err != nil {
		return nil, err
	}

	return &DatabaseConfig{
		Driver:             driver,
		DSN:                dsn,
		MaxOpenConns:       maxOpen,
		MaxIdleConns:       maxIdle,
		ConnMaxLifetime:    lifetime,
		SlowQueryThreshold: slowQuery,
		AutoMigrate:        os.Getenv(databaseAutoMigrateEnv) != "false",
	}, nil
}

func (c *DatabaseConfig) Validate() error {
	if c == nil {
		return ErrDatabaseURLMissing
	}
	if c.Driver != DriverPostgres && c.Driver != DriverSQLite {
		return ErrUnsupportedDatabaseDriver
	}
	if c.DSN == "" {
		return ErrDatabaseURLMissing
	}
	return nil
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return 0, &InvalidDurationError{Key: key, Value: raw}
	}

	return parsed, nil
}
