package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"QUOTES_CONFIG", "PORT", "HTTP_TIMEOUT_SEC", "IEX_BASE_URL",
	"ALPHA_VANTAGE_API_KEY", "ALPHA_VANTAGE_BASE_URL", "ALPHA_VANTAGE_MIN_INTERVAL_MS",
	"CACHE_BACKEND", "MIN_CACHE_SECONDS", "CACHE_JANITOR_INTERVAL_SEC",
	"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB",
	"DB_DRIVER", "DB_DSN", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_HOST", "DB_PORT", "DB_SSLMODE",
	"RUN_MIGRATIONS",
}

// clearEnv はテスト中に参照される環境変数を空にします。
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// TestLoad_Defaults はファイルも環境変数もない場合にデフォルト値が使われることを検証します。
func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout())
	assert.Equal(t, "https://api.iextrading.com/1.0/stock/market/batch", cfg.IEXConfig().BaseURL)
	av := cfg.AlphaVantageConfig()
	assert.Empty(t, av.APIKey)
	assert.Equal(t, time.Second, av.MinInterval)
	assert.Equal(t, CacheAuto, cfg.Cache.Backend)
	assert.Equal(t, int64(60), cfg.Cache.MinSeconds)
	assert.Equal(t, "sqlite", cfg.DBConfig().Driver)
	assert.False(t, cfg.RedisConfig().Enabled())
}

// TestLoad_YAMLFile はYAMLファイルの値がデフォルトを上書きすることを検証します。
func TestLoad_YAMLFile(t *testing.T) {
	clearEnv(t)

	path := writeFile(t, `
server:
  port: 9090
alpha_vantage:
  api_key: file-key
  min_interval_ms: 1500
cache:
  backend: redis
  min_seconds: 120
redis:
  host: redis.local
database:
  driver: postgres
  host: db.local
  port: "5432"
  name: quotes
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "file-key", cfg.AlphaVantageConfig().APIKey)
	assert.Equal(t, 1500*time.Millisecond, cfg.AlphaVantageConfig().MinInterval)
	assert.Equal(t, "https://www.alphavantage.co/query", cfg.AlphaVantageConfig().BaseURL)
	assert.Equal(t, CacheRedis, cfg.Cache.Backend)
	assert.Equal(t, int64(120), cfg.Cache.MinSeconds)
	assert.Equal(t, "redis.local:6379", cfg.RedisConfig().Addr())

	dbc := cfg.DBConfig()
	assert.Equal(t, "postgres", dbc.Driver)
	assert.Equal(t, "db.local", dbc.Host)
	assert.Equal(t, "quotes", dbc.Name)
}

// TestLoad_EnvOverridesFile は環境変数がファイルの値より優先されることを検証します。
func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "server:\n  port: 9090\nalpha_vantage:\n  api_key: file-key\n")

	t.Setenv("PORT", "7070")
	t.Setenv("ALPHA_VANTAGE_API_KEY", "env-key")
	t.Setenv("CACHE_BACKEND", "SQL")
	t.Setenv("MIN_CACHE_SECONDS", "90")
	t.Setenv("RUN_MIGRATIONS", "false")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "env-key", cfg.AlphaVantage.APIKey)
	assert.Equal(t, CacheSQL, cfg.Cache.Backend)
	assert.Equal(t, int64(90), cfg.Cache.MinSeconds)
	assert.False(t, cfg.Database.RunMigrations)
}

// TestLoad_Errors は不正な設定でエラーになることを検証します。
func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		file    string
		wantErr string
	}{
		{name: "invalid port", env: map[string]string{"PORT": "0"}, wantErr: "invalid PORT"},
		{name: "non numeric port", env: map[string]string{"PORT": "http"}, wantErr: "invalid PORT"},
		{name: "invalid min cache seconds", env: map[string]string{"MIN_CACHE_SECONDS": "soon"}, wantErr: "invalid MIN_CACHE_SECONDS"},
		{name: "negative min cache seconds", env: map[string]string{"MIN_CACHE_SECONDS": "-1"}, wantErr: "min_seconds must be >= 0"},
		{name: "unknown backend", env: map[string]string{"CACHE_BACKEND": "memcached"}, wantErr: "invalid cache backend"},
		{name: "invalid redis db", env: map[string]string{"REDIS_DB": "one"}, wantErr: "invalid REDIS_DB"},
		{name: "zero timeout", file: "http:\n  timeout_sec: 0\n", wantErr: "timeout_sec must be > 0"},
		{name: "broken yaml", file: "server: [\n", wantErr: "parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.file != "" {
				path = writeFile(t, tt.file)
			}

			_, err := Load(path)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

// TestLoad_MissingFile は指定されたファイルが存在しない場合にエラーになることを検証します。
func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config")
}

// TestPath はQUOTES_CONFIGが設定されている場合にそのパスを返すことを検証します。
func TestPath(t *testing.T) {
	clearEnv(t)
	t.Setenv("QUOTES_CONFIG", "/etc/quotes.yaml")

	assert.Equal(t, "/etc/quotes.yaml", Path())
}
