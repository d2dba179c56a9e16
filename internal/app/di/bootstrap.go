// Package di wires the quote service from configuration.
package di

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"quote_backend/internal/app/config"
	quoteadapters "quote_backend/internal/feature/quotes/adapters"
	"quote_backend/internal/platform/db"
	"quote_backend/internal/platform/http/handler"
	"quote_backend/internal/platform/redis"
)

// Resources holds the connections opened for the cache backend.
type Resources struct {
	Redis *goredis.Client
	DB    *gorm.DB
	// Checks feed the readiness endpoint.
	Checks map[string]handler.Checker
}

// Close releases every open connection.
func (r *Resources) Close() error {
	var errs []error
	if r.Redis != nil {
		errs = append(errs, r.Redis.Close())
	}
	if r.DB != nil {
		if sqlDB, err := r.DB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	return errors.Join(errs...)
}

// RunJanitor deletes expired SQL cache rows every interval until ctx is done.
// It returns immediately when the SQL backend is not in use.
func (r *Resources) RunJanitor(ctx context.Context, interval time.Duration) {
	if r.DB == nil || interval <= 0 {
		return
	}
	store := quoteadapters.NewCacheEntrySQL(r.DB)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.DeleteExpired(ctx)
			if err != nil {
				slog.Warn("failed to delete expired cache entries", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("deleted expired cache entries", "count", n)
			}
		}
	}
}

// Bootstrap builds the quote service described by cfg. withCache false skips
// the cache backend entirely.
func Bootstrap(ctx context.Context, cfg *config.Config, withCache bool) (*QuoteService, *Resources, error) {
	b := NewQuoteServiceBuilder().
		WithIEX(cfg.IEXConfig()).
		WithHTTPClient(NewHTTPClient(cfg.HTTPTimeout()))
	if av := cfg.AlphaVantageConfig(); av.APIKey != "" {
		b.WithAlphaVantageConfig(av)
	} else {
		slog.Warn("ALPHA_VANTAGE_API_KEY is not set; only US symbols are supported")
	}

	res := &Resources{Checks: map[string]handler.Checker{}}
	if withCache {
		if err := openCache(ctx, cfg, b, res); err != nil {
			_ = res.Close()
			return nil, nil, err
		}
	}

	svc, err := b.Build()
	if err != nil {
		_ = res.Close()
		return nil, nil, err
	}
	return svc, res, nil
}

func openCache(ctx context.Context, cfg *config.Config, b *QuoteServiceBuilder, res *Resources) error {
	backend := cfg.Cache.Backend

	if backend == config.CacheRedis || (backend == config.CacheAuto && cfg.RedisConfig().Enabled()) {
		rdb, err := redis.NewRedisClient(ctx, cfg.RedisConfig())
		switch {
		case err == nil:
			res.Redis = rdb
			res.Checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
			b.WithRedisCaching(rdb, cfg.Cache.MinSeconds)
			return nil
		case backend == config.CacheRedis:
			return fmt.Errorf("redis cache: %w", err)
		}
		slog.Warn("Redis unavailable, falling back to SQL cache", "error", err)
	}

	if backend == config.CacheAuto || backend == config.CacheSQL {
		gdb, err := db.OpenDB(cfg.DBConfig(), &quoteadapters.CacheEntryModel{})
		if err != nil {
			return fmt.Errorf("sql cache: %w", err)
		}
		res.DB = gdb
		res.Checks["database"] = func(ctx context.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
		b.WithSQLCaching(gdb, cfg.Cache.MinSeconds)
		return nil
	}

	slog.Info("quote caching disabled")
	return nil
}
