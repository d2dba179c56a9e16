// Package config loads the server configuration from an optional YAML file
// with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"quote_backend/internal/feature/quotes/adapters/alphavantage"
	"quote_backend/internal/feature/quotes/adapters/iex"
	"quote_backend/internal/feature/quotes/usecase"
	"quote_backend/internal/platform/db"
	"quote_backend/internal/platform/redis"
)

// DefaultPath is read when QUOTES_CONFIG is unset and the file exists.
const DefaultPath = "config.yaml"

// Cache backends.
const (
	CacheAuto  = "auto"
	CacheRedis = "redis"
	CacheSQL   = "sql"
	CacheNone  = "none"
)

type Config struct {
	Server       ServerConfig       `yaml:"server"`
	HTTP         HTTPConfig         `yaml:"http"`
	IEX          IEXConfig          `yaml:"iex"`
	AlphaVantage AlphaVantageConfig `yaml:"alpha_vantage"`
	Cache        CacheConfig        `yaml:"cache"`
	Redis        RedisConfig        `yaml:"redis"`
	Database     DatabaseConfig     `yaml:"database"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type HTTPConfig struct {
	TimeoutSec int `yaml:"timeout_sec"`
}

type IEXConfig struct {
	BaseURL string `yaml:"base_url"`
}

type AlphaVantageConfig struct {
	APIKey        string `yaml:"api_key"`
	BaseURL       string `yaml:"base_url"`
	MinIntervalMs int    `yaml:"min_interval_ms"`
}

type CacheConfig struct {
	// Backend is auto, redis, sql or none. auto prefers Redis and falls back to SQL.
	Backend            string `yaml:"backend"`
	MinSeconds         int64  `yaml:"min_seconds"`
	JanitorIntervalSec int    `yaml:"janitor_interval_sec"`
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type DatabaseConfig struct {
	Driver        string `yaml:"driver"`
	DSN           string `yaml:"dsn"`
	User          string `yaml:"user"`
	Password      string `yaml:"password"`
	Name          string `yaml:"name"`
	Host          string `yaml:"host"`
	Port          string `yaml:"port"`
	SSLMode       string `yaml:"sslmode"`
	RunMigrations bool   `yaml:"run_migrations"`
}

// Default returns the configuration used when neither a file nor environment
// variables say otherwise.
func Default() Config {
	return Config{
		Server:       ServerConfig{Port: 8080},
		HTTP:         HTTPConfig{TimeoutSec: 10},
		IEX:          IEXConfig{BaseURL: iex.DefaultBaseURL},
		AlphaVantage: AlphaVantageConfig{BaseURL: alphavantage.DefaultBaseURL, MinIntervalMs: int(alphavantage.DefaultMinInterval / time.Millisecond)},
		Cache:        CacheConfig{Backend: CacheAuto, MinSeconds: usecase.MinCacheSeconds, JanitorIntervalSec: 300},
		Redis:        RedisConfig{Port: "6379"},
		Database:     DatabaseConfig{Driver: db.DriverSQLite, RunMigrations: true},
	}
}

// Path returns QUOTES_CONFIG, or DefaultPath when that file exists, or "".
func Path() string {
	if p := os.Getenv("QUOTES_CONFIG"); p != "" {
		return p
	}
	if _, err := os.Stat(DefaultPath); err == nil {
		return DefaultPath
	}
	return ""
}

// Load reads path over Default and then applies environment overrides.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDefault is Load(Path()) that tolerates a vanished default file.
func LoadDefault() (*Config, error) {
	cfg, err := Load(Path())
	if errors.Is(err, fs.ErrNotExist) && os.Getenv("QUOTES_CONFIG") == "" {
		return Load("")
	}
	return cfg, err
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p <= 0 || p > 65535 {
			return fmt.Errorf("invalid PORT: %q", v)
		}
		cfg.Server.Port = p
	}
	if err := envInt("HTTP_TIMEOUT_SEC", &cfg.HTTP.TimeoutSec); err != nil {
		return err
	}

	envString("IEX_BASE_URL", &cfg.IEX.BaseURL)
	envString("ALPHA_VANTAGE_API_KEY", &cfg.AlphaVantage.APIKey)
	envString("ALPHA_VANTAGE_BASE_URL", &cfg.AlphaVantage.BaseURL)
	if err := envInt("ALPHA_VANTAGE_MIN_INTERVAL_MS", &cfg.AlphaVantage.MinIntervalMs); err != nil {
		return err
	}

	envString("CACHE_BACKEND", &cfg.Cache.Backend)
	cfg.Cache.Backend = strings.ToLower(cfg.Cache.Backend)
	if v := os.Getenv("MIN_CACHE_SECONDS"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid MIN_CACHE_SECONDS: %q", v)
		}
		cfg.Cache.MinSeconds = n
	}
	if err := envInt("CACHE_JANITOR_INTERVAL_SEC", &cfg.Cache.JanitorIntervalSec); err != nil {
		return err
	}

	envString("REDIS_HOST", &cfg.Redis.Host)
	envString("REDIS_PORT", &cfg.Redis.Port)
	envString("REDIS_PASSWORD", &cfg.Redis.Password)
	if err := envInt("REDIS_DB", &cfg.Redis.DB); err != nil {
		return err
	}

	envString("DB_DRIVER", &cfg.Database.Driver)
	cfg.Database.Driver = strings.ToLower(cfg.Database.Driver)
	envString("DB_DSN", &cfg.Database.DSN)
	envString("DB_USER", &cfg.Database.User)
	envString("DB_PASSWORD", &cfg.Database.Password)
	envString("DB_NAME", &cfg.Database.Name)
	envString("DB_HOST", &cfg.Database.Host)
	envString("DB_PORT", &cfg.Database.Port)
	envString("DB_SSLMODE", &cfg.Database.SSLMode)
	if v := os.Getenv("RUN_MIGRATIONS"); v != "" {
		cfg.Database.RunMigrations = v == "true"
	}
	return nil
}

func (c *Config) validate() error {
	switch c.Cache.Backend {
	case CacheAuto, CacheRedis, CacheSQL, CacheNone:
	default:
		return fmt.Errorf("invalid cache backend %q", c.Cache.Backend)
	}
	if c.Cache.MinSeconds < 0 {
		return fmt.Errorf("cache min_seconds must be >= 0, got %d", c.Cache.MinSeconds)
	}
	if c.HTTP.TimeoutSec <= 0 {
		return fmt.Errorf("http timeout_sec must be > 0, got %d", c.HTTP.TimeoutSec)
	}
	return nil
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", key, v)
	}
	*dst = n
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string { return ":" + strconv.Itoa(c.Server.Port) }

// HTTPTimeout is the whole-request timeout for provider calls.
func (c *Config) HTTPTimeout() time.Duration { return time.Duration(c.HTTP.TimeoutSec) * time.Second }

func (c *Config) IEXConfig() iex.Config { return iex.Config{BaseURL: c.IEX.BaseURL} }

func (c *Config) AlphaVantageConfig() alphavantage.Config {
	return alphavantage.Config{
		APIKey:      c.AlphaVantage.APIKey,
		BaseURL:     c.AlphaVantage.BaseURL,
		MinInterval: time.Duration(c.AlphaVantage.MinIntervalMs) * time.Millisecond,
	}
}

func (c *Config) RedisConfig() redis.Config {
	return redis.Config{Host: c.Redis.Host, Port: c.Redis.Port, Password: c.Redis.Password, DB: c.Redis.DB}
}

func (c *Config) DBConfig() db.Config {
	d := c.Database
	return db.Config{
		Driver:        d.Driver,
		DSN:           d.DSN,
		User:          d.User,
		Password:      d.Password,
		Name:          d.Name,
		Host:          d.Host,
		Port:          d.Port,
		SSLMode:       d.SSLMode,
		RunMigrations: d.RunMigrations,
	}
}
