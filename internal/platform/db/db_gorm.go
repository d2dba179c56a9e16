// Package db opens the SQL database backing the quote cache when Redis is
// unavailable.
package db

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultSQLitePath = "quote_cache.db"
	connectTimeout    = 60 * time.Second
)

// retryInterval is how long ConnectWithRetry waits between attempts.
var retryInterval = 3 * time.Second

// Config describes how to reach the database.
// DSN, when set, is used verbatim and the individual fields are ignored.
type Config struct {
	Driver        string
	DSN           string
	User          string
	Password      string
	Name          string
	Host          string
	Port          string
	SSLMode       string
	RunMigrations bool
}

// BuildDSN returns the connection string for cfg.Driver.
// For sqlite, Name is the database file and defaults to quote_cache.db.
func BuildDSN(cfg Config) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	if cfg.Driver == DriverSQLite {
		if cfg.Name == "" {
			return defaultSQLitePath
		}
		return cfg.Name
	}

	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, sslmode)
}

// Opener opens a gorm connection for a DSN.
type Opener func(dsn string) (*gorm.DB, error)

// OpenerFor returns the Opener for driver.
func OpenerFor(driver string) (Opener, error) {
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}
	switch driver {
	case DriverPostgres:
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), gcfg)
		}, nil
	case DriverSQLite:
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(sqlite.Open(dsn), gcfg)
		}, nil
	default:
		return nil, fmt.Errorf("unsupported DB driver %q", driver)
	}
}

// ConnectWithRetry calls opener until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, fmt.Errorf("DB connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err)
		time.Sleep(min(retryInterval, remaining))
	}
}

// OpenDB connects using cfg and, when cfg.RunMigrations is set, migrates models.
func OpenDB(cfg Config, models ...any) (*gorm.DB, error) {
	opener, err := OpenerFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	dsn := BuildDSN(cfg)
	if cfg.Driver == DriverPostgres {
		pc, err := pgx.ParseConfig(dsn)
		if err != nil {
			return nil, fmt.Errorf("invalid postgres DSN: %w", err)
		}
		slog.Info("connecting to postgres", "host", pc.Host, "port", pc.Port, "database", pc.Database)
	} else {
		slog.Info("opening sqlite database", "path", dsn)
	}

	db, err := ConnectWithRetry(dsn, connectTimeout, opener)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations && len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}
	return db, nil
}
