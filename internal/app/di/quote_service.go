package di

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	quoteadapters "quote_backend/internal/feature/quotes/adapters"
	"quote_backend/internal/feature/quotes/adapters/alphavantage"
	"quote_backend/internal/feature/quotes/adapters/iex"
	"quote_backend/internal/feature/quotes/domain"
	"quote_backend/internal/feature/quotes/usecase"
	"quote_backend/internal/platform/cache"
	infrahttp "quote_backend/internal/platform/http"
	"quote_backend/internal/shared/ratelimiter"
)

// QuoteService is the assembled quote pipeline.
type QuoteService struct {
	// Fetcher answers quote requests, through the cache when one is configured.
	Fetcher usecase.QuoteFetcher
	// Cache is nil when caching is disabled.
	Cache *usecase.QuoteCache
	// International reports whether non-US symbols can be served.
	International bool
}

// QuoteServiceBuilder assembles a QuoteService. Invalid options are collected
// and reported by Build.
type QuoteServiceBuilder struct {
	iex        iex.Config
	av         *alphavantage.Config
	hc         *http.Client
	rdb        redis.Cmdable
	sqlDB      *gorm.DB
	minSeconds int64
	errs       []error
}

// NewQuoteServiceBuilder returns a builder serving US symbols only, uncached.
func NewQuoteServiceBuilder() *QuoteServiceBuilder {
	return &QuoteServiceBuilder{
		iex:        iex.Config{BaseURL: iex.DefaultBaseURL},
		minSeconds: usecase.MinCacheSeconds,
	}
}

// WithIEX overrides the batch provider configuration.
func (b *QuoteServiceBuilder) WithIEX(cfg iex.Config) *QuoteServiceBuilder {
	if cfg.BaseURL == "" {
		cfg.BaseURL = iex.DefaultBaseURL
	}
	b.iex = cfg
	return b
}

// WithHTTPClient sets the client used for provider calls.
func (b *QuoteServiceBuilder) WithHTTPClient(hc *http.Client) *QuoteServiceBuilder {
	b.hc = hc
	return b
}

// WithAlphaVantage enables non-US symbols with the default endpoint and rate.
func (b *QuoteServiceBuilder) WithAlphaVantage(apiKey string) *QuoteServiceBuilder {
	return b.WithAlphaVantageConfig(alphavantage.Config{APIKey: apiKey})
}

// WithAlphaVantageConfig enables non-US symbols. Zero BaseURL and MinInterval
// take the defaults.
func (b *QuoteServiceBuilder) WithAlphaVantageConfig(cfg alphavantage.Config) *QuoteServiceBuilder {
	if cfg.APIKey == "" {
		b.errs = append(b.errs, errors.New("AlphaVantage API key must not be empty"))
		return b
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = alphavantage.DefaultBaseURL
	}
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = alphavantage.DefaultMinInterval
	}
	b.av = &cfg
	return b
}

// WithRedisCaching caches quotes in Redis. minSeconds is the lifetime while
// the market is open and is raised to usecase.MinCacheSeconds.
func (b *QuoteServiceBuilder) WithRedisCaching(rdb redis.Cmdable, minSeconds int64) *QuoteServiceBuilder {
	if rdb == nil {
		b.errs = append(b.errs, errors.New("redis client must not be nil"))
		return b
	}
	if b.setMinSeconds(minSeconds) {
		b.rdb = rdb
	}
	return b
}

// WithSQLCaching caches quotes in the quote_cache table. Redis wins when both
// are configured.
func (b *QuoteServiceBuilder) WithSQLCaching(db *gorm.DB, minSeconds int64) *QuoteServiceBuilder {
	if db == nil {
		b.errs = append(b.errs, errors.New("database must not be nil"))
		return b
	}
	if b.setMinSeconds(minSeconds) {
		b.sqlDB = db
	}
	return b
}

func (b *QuoteServiceBuilder) setMinSeconds(minSeconds int64) bool {
	if minSeconds < 0 {
		b.errs = append(b.errs, fmt.Errorf("min cache seconds must be >= 0, got %d", minSeconds))
		return false
	}
	b.minSeconds = minSeconds
	return true
}

// Build wires the providers, the rate limiter and the optional cache.
func (b *QuoteServiceBuilder) Build() (*QuoteService, error) {
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidArgument, errors.Join(b.errs...))
	}

	client := infrahttp.NewClient(b.hc)

	var (
		daily   usecase.DailyQuoteAPI
		limiter usecase.RateLimiter
	)
	if b.av != nil {
		daily = alphavantage.NewDailyAPI(*b.av)
		limiter = ratelimiter.NewMinInterval(b.av.MinInterval)
	}
	fetcher := usecase.NewQuoteUsecase(client, iex.NewBatchAPI(b.iex), daily, limiter)

	svc := &QuoteService{Fetcher: fetcher, International: fetcher.SupportsInternational()}

	var store usecase.CacheStore
	switch {
	case b.rdb != nil:
		store = cache.NewRedisStore(b.rdb, "")
	case b.sqlDB != nil:
		store = quoteadapters.NewCacheEntrySQL(b.sqlDB)
	}
	if store != nil {
		svc.Cache = usecase.NewQuoteCache(store, b.minSeconds)
		svc.Fetcher = usecase.NewCachedQuoteUsecase(fetcher, svc.Cache)
	}
	return svc, nil
}

// NewHTTPClient returns the provider client with the given timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return infrahttp.NewHTTPClient(timeout)
}
