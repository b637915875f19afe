package config

import (
	"time"

	"github.com/k1networth/issue-tracker/internal/shared/env"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	AppEnv   string
	HTTPAddr string

	// StoreDriver selects the issue store backend: memory, sqlite, or
	// postgres.
	StoreDriver string
	SQLitePath  string
	DatabaseURL string

	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBPingTimeout     time.Duration
}

func Load() Config {
	loadDotEnv(".env")

	return Config{
		AppEnv:   env.String("APP_ENV", "dev"),
		HTTPAddr: env.String("HTTP_ADDR", ":8080"),

		StoreDriver: env.String("STORE_DRIVER", DriverSQLite),
		SQLitePath:  env.String("SQLITE_PATH", "database.db"),
		DatabaseURL: env.String("DATABASE_URL", ""),

		DBMaxOpenConns:    env.Int("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns:    env.Int("DB_MAX_IDLE_CONNS", 10),
		DBConnMaxLifetime: env.Duration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		DBPingTimeout:     env.Duration("DB_PING_TIMEOUT", 3*time.Second),
	}
}
