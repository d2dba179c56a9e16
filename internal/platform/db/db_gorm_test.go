package db

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type migrationProbe struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

// TestBuildDSN_Postgres はPostgreSQL用のDSN文字列が正しく生成されることを検証します。
func TestBuildDSN_Postgres(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Driver:   DriverPostgres,
		User:     "testuser",
		Password: "testpass",
		Name:     "testdb",
		Host:     "localhost",
		Port:     "5432",
	}

	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable TimeZone=UTC"
	assert.Equal(t, expected, BuildDSN(cfg))

	cfg.SSLMode = "require"
	assert.Contains(t, BuildDSN(cfg), "sslmode=require")
}

// TestBuildDSN_SQLite はSQLiteのファイルパスが返されることを検証します。
func TestBuildDSN_SQLite(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "quote_cache.db", BuildDSN(Config{Driver: DriverSQLite}))
	assert.Equal(t, "/tmp/q.db", BuildDSN(Config{Driver: DriverSQLite, Name: "/tmp/q.db"}))
}

// TestBuildDSN_ExplicitDSNTakesPrecedence はDSNが設定されている場合に個別項目より優先されることを検証します。
func TestBuildDSN_ExplicitDSNTakesPrecedence(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Driver: DriverPostgres,
		DSN:    "postgres://u:p@db:5432/quotes",
		Host:   "localhost",
		Port:   "5432",
	}
	assert.Equal(t, "postgres://u:p@db:5432/quotes", BuildDSN(cfg))
}

// TestOpenerFor_UnknownDriver は未対応のドライバでエラーになることを検証します。
func TestOpenerFor_UnknownDriver(t *testing.T) {
	t.Parallel()

	_, err := OpenerFor("mysql")
	assert.ErrorContains(t, err, "unsupported DB driver")
}

// TestConnectWithRetry_SuccessOnFirstTry は初回接続成功時にリトライせずDBを返すことを検証します。
func TestConnectWithRetry_SuccessOnFirstTry(t *testing.T) {
	t.Parallel()

	mockDB := &gorm.DB{}
	opener := func(dsn string) (*gorm.DB, error) {
		return mockDB, nil
	}

	db, err := ConnectWithRetry("test-dsn", 5*time.Second, opener)

	require.NoError(t, err)
	assert.Same(t, mockDB, db)
}

// TestConnectWithRetry_RetriesOnFailure は接続失敗時にリトライして最終的に成功することを検証します。
func TestConnectWithRetry_RetriesOnFailure(t *testing.T) {
	// retryInterval を書き換えるため並列実行しない
	old := retryInterval
	retryInterval = 10 * time.Millisecond
	t.Cleanup(func() { retryInterval = old })

	mockDB := &gorm.DB{}
	attemptCount := 0

	opener := func(dsn string) (*gorm.DB, error) {
		attemptCount++
		if attemptCount < 3 {
			return nil, errors.New("connection refused")
		}
		return mockDB, nil
	}

	db, err := ConnectWithRetry("test-dsn", 5*time.Second, opener)

	require.NoError(t, err)
	assert.Same(t, mockDB, db)
	assert.Equal(t, 3, attemptCount)
}

// TestConnectWithRetry_TimeoutAfterRetries はタイムアウト後にエラーが返されることを検証します。
func TestConnectWithRetry_TimeoutAfterRetries(t *testing.T) {
	t.Parallel()

	attemptCount := 0
	opener := func(dsn string) (*gorm.DB, error) {
		attemptCount++
		return nil, errors.New("connection refused")
	}

	_, err := ConnectWithRetry("test-dsn", 100*time.Millisecond, opener)

	require.Error(t, err)
	assert.ErrorContains(t, err, "connection refused")
	assert.GreaterOrEqual(t, attemptCount, 1)
}

// TestOpenDB_SQLiteWithMigrations はSQLiteで接続しマイグレーションが実行されることを検証します。
func TestOpenDB_SQLiteWithMigrations(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "quotes.db")
	db, err := OpenDB(Config{Driver: DriverSQLite, Name: path, RunMigrations: true}, &migrationProbe{})
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable(&migrationProbe{}))
}

// TestOpenDB_InvalidPostgresDSN は不正なPostgreSQL DSNで接続前にエラーになることを検証します。
func TestOpenDB_InvalidPostgresDSN(t *testing.T) {
	t.Parallel()

	_, err := OpenDB(Config{Driver: DriverPostgres, DSN: "postgres://%zz"})
	assert.ErrorContains(t, err, "invalid postgres DSN")
}
