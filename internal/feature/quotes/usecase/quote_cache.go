package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"quote_backend/internal/feature/quotes/domain"
)

//go:generate mockgen -source=quote_cache.go -destination=mock_cache_store_test.go -package=usecase

const (
	cacheKeyPrefix = "q:"
	// MinCacheSeconds is the shortest lifetime of any cached quote.
	MinCacheSeconds = 60
)

// CacheStore is a key-value store with per-entry expiry.
type CacheStore interface {
	// Get reports false when key is absent or expired.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// CacheDeleter is implemented by stores that support explicit invalidation.
type CacheDeleter interface {
	Delete(ctx context.Context, keys ...string) error
	DeleteByPrefix(ctx context.Context, prefix string) (int, error)
}

// ErrInvalidationUnsupported is returned when the store cannot delete entries.
var ErrInvalidationUnsupported = errors.New("cache store does not support invalidation")

// LastCloser reports the most recent closing instant of a market.
type LastCloser interface {
	TimestampOfLastClose(now time.Time) int64
}

// ShouldCacheQuote reports whether a quote last updated at lastUpdated (unix
// seconds) may be cached at now. A quote older than the market's last close
// is stale and must not outlive the close.
func ShouldCacheQuote(lastUpdated int64, market LastCloser, now time.Time) bool {
	lastClose := market.TimestampOfLastClose(now)
	return now.Unix() < lastClose || lastUpdated >= lastClose
}

// CacheKey returns the store key for a full symbol.
func CacheKey(fullSymbol string) string { return cacheKeyPrefix + fullSymbol }

// QuoteCache reads and writes serialized quotes with market-hours aware expiry.
// Store failures are logged and otherwise ignored.
type QuoteCache struct {
	store      CacheStore
	minSeconds int64
}

// NewQuoteCache creates a QuoteCache. minSeconds is the lifetime used while
// the market is open; values below MinCacheSeconds are raised to it.
func NewQuoteCache(store CacheStore, minSeconds int64) *QuoteCache {
	return &QuoteCache{store: store, minSeconds: minSeconds}
}

// TTL returns how long a quote of exchange may live when stored at now:
// minSeconds while the market is open, otherwise until the next open. Never
// less than MinCacheSeconds.
func (c *QuoteCache) TTL(exchange domain.Exchange, now time.Time) time.Duration {
	secs := c.minSeconds
	if !exchange.IsOpen(now) {
		secs = exchange.SecondsUntilNextOpen(now)
	}
	return time.Duration(max(secs, MinCacheSeconds)) * time.Second
}

// Get returns the cached quote for fullSymbol. Errors and corrupted entries
// count as a miss.
func (c *QuoteCache) Get(ctx context.Context, fullSymbol string) (domain.Quote, bool) {
	key := CacheKey(fullSymbol)
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		slog.Warn("quote cache get failed", "key", key, "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	q, err := domain.UnmarshalQuote([]byte(raw))
	if err != nil {
		slog.Warn("corrupted quote cache entry", "key", key, "error", err)
		return nil, false
	}
	return q, true
}

// Put stores q under fullSymbol when ShouldCacheQuote allows it. It reports
// whether the quote was written.
func (c *QuoteCache) Put(ctx context.Context, fullSymbol string, q domain.Quote, now time.Time) bool {
	// Only the string form survives the fetch, so the exchange is re-derived from it.
	symbol, err := domain.ParseSymbol(fullSymbol)
	if err != nil {
		slog.Warn("quote cache skipped unparsable symbol", "symbol", fullSymbol, "error", err)
		return false
	}
	exchange := symbol.Exchange()
	if !ShouldCacheQuote(q.LastUpdated(), exchange, now) {
		return false
	}

	b, err := domain.MarshalQuote(q)
	if err != nil {
		slog.Warn("quote cache encode failed", "symbol", fullSymbol, "error", err)
		return false
	}
	key := CacheKey(symbol.FullSymbol())
	if err := c.store.Set(ctx, key, string(b), c.TTL(exchange, now)); err != nil {
		slog.Warn("quote cache set failed", "key", key, "error", err)
		return false
	}
	return true
}

// Invalidate removes the cached quotes of the given full symbols. With no
// symbols every cached quote is removed. It returns the number of entries
// targeted.
func (c *QuoteCache) Invalidate(ctx context.Context, fullSymbols ...string) (int, error) {
	deleter, ok := c.store.(CacheDeleter)
	if !ok {
		return 0, ErrInvalidationUnsupported
	}
	if len(fullSymbols) == 0 {
		return deleter.DeleteByPrefix(ctx, cacheKeyPrefix)
	}
	keys := make([]string, len(fullSymbols))
	for i, fs := range fullSymbols {
		keys[i] = CacheKey(fs)
	}
	if err := deleter.Delete(ctx, keys...); err != nil {
		return 0, err
	}
	return len(keys), nil
}
