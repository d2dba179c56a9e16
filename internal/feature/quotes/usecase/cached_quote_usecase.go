package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"quote_backend/internal/feature/quotes/domain"
)

// CachedQuoteUsecase decorates a QuoteFetcher with a QuoteCache. Cached
// symbols are answered from the store; only the misses reach the inner fetcher.
type CachedQuoteUsecase struct {
	inner QuoteFetcher
	cache *QuoteCache
	now   func() time.Time
}

var _ QuoteFetcher = (*CachedQuoteUsecase)(nil)

// NewCachedQuoteUsecase wraps inner with cache.
func NewCachedQuoteUsecase(inner QuoteFetcher, cache *QuoteCache) *CachedQuoteUsecase {
	return &CachedQuoteUsecase{inner: inner, cache: cache, now: time.Now}
}

// FetchQuotes returns quotes keyed by full symbol, using cached entries where
// available and caching freshly fetched quotes that qualify.
func (u *CachedQuoteUsecase) FetchQuotes(ctx context.Context, symbols []domain.Symbol) (map[string]domain.Quote, error) {
	if symbols == nil {
		return nil, fmt.Errorf("%w: symbols must not be nil", domain.ErrInvalidArgument)
	}

	quotes := make(map[string]domain.Quote, len(symbols))
	seen := make(map[string]struct{}, len(symbols))
	var misses []domain.Symbol
	for _, s := range symbols {
		fs := s.FullSymbol()
		if _, dup := seen[fs]; dup {
			continue
		}
		seen[fs] = struct{}{}
		if q, ok := u.cache.Get(ctx, fs); ok {
			quotes[fs] = q
			continue
		}
		misses = append(misses, s)
	}
	if len(misses) == 0 {
		return quotes, nil
	}

	fetched, err := u.inner.FetchQuotes(ctx, misses)
	if err != nil {
		return nil, err
	}

	now := u.now()
	stored := 0
	for fs, q := range fetched {
		if u.cache.Put(ctx, fs, q, now) {
			stored++
		}
		quotes[fs] = q
	}
	slog.Debug("quotes fetched", "hits", len(quotes)-len(fetched), "fetched", len(fetched), "cached", stored)
	return quotes, nil
}
