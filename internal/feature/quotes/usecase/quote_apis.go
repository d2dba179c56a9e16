// Package usecase implements quote fetching: routing symbols between the
// providers, reconciling their answers and caching the results.
package usecase

import (
	"context"
	"time"

	"quote_backend/internal/feature/quotes/domain"
)

// Interfaces are defined here, on the consumer side, as Go convention suggests.

// BatchQuoteAPI builds and parses requests for the provider that returns every
// US quote in one call.
type BatchQuoteAPI interface {
	BatchQuoteURL(fullSymbols []string) string
	// QuotesFromBatchResponse returns quotes keyed by the symbols the provider answered for.
	QuotesFromBatchResponse(body []byte) (map[string]domain.Quote, error)
}

// DailyQuoteAPI builds and parses requests for the per-symbol provider used
// for every exchange outside the US.
type DailyQuoteAPI interface {
	DailyQuoteURL(fullSymbol string) string
	// QuoteFromResponse parses a single quote. now becomes its LastUpdated.
	QuoteFromResponse(body []byte, now time.Time) (domain.Quote, error)
}

// HTTPGetter performs a GET and reports how long the transfer took.
type HTTPGetter interface {
	Get(ctx context.Context, url string) ([]byte, time.Duration, error)
}

// RateLimiter paces the sequential per-symbol calls.
type RateLimiter interface {
	WaitAfter(transfer time.Duration)
}

// QuoteFetcher returns quotes keyed by full symbol.
type QuoteFetcher interface {
	FetchQuotes(ctx context.Context, symbols []domain.Symbol) (map[string]domain.Quote, error)
}
