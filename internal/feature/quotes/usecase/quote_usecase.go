package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"quote_backend/internal/feature/quotes/domain"
)

// QuoteUsecase fetches quotes from the providers. US symbols go to the batch
// API in a single call that runs in the background while the other symbols are
// fetched one by one from the daily API.
type QuoteUsecase struct {
	http    HTTPGetter
	batch   BatchQuoteAPI
	daily   DailyQuoteAPI
	limiter RateLimiter
	now     func() time.Time
}

var _ QuoteFetcher = (*QuoteUsecase)(nil)

// NewQuoteUsecase creates a QuoteUsecase. daily may be nil, in which case any
// non-US symbol fails with UnsupportedSymbolsError. limiter may be nil to
// disable pacing.
func NewQuoteUsecase(http HTTPGetter, batch BatchQuoteAPI, daily DailyQuoteAPI, limiter RateLimiter) *QuoteUsecase {
	return &QuoteUsecase{http: http, batch: batch, daily: daily, limiter: limiter, now: time.Now}
}

// SupportsInternational reports whether a daily API is configured.
func (u *QuoteUsecase) SupportsInternational() bool { return u.daily != nil }

// FetchQuotes returns quotes keyed by full symbol. Duplicate symbols are
// requested once. The first failure aborts the whole call.
func (u *QuoteUsecase) FetchQuotes(ctx context.Context, symbols []domain.Symbol) (map[string]domain.Quote, error) {
	if symbols == nil {
		return nil, fmt.Errorf("%w: symbols must not be nil", domain.ErrInvalidArgument)
	}

	us, nonUS := partition(symbols)
	if len(nonUS) > 0 && u.daily == nil {
		return nil, &domain.UnsupportedSymbolsError{Symbols: nonUS}
	}

	quotes := make(map[string]domain.Quote, len(us)+len(nonUS))
	if len(us) == 0 && len(nonUS) == 0 {
		return quotes, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// The batch call owns batchBody until g.Wait returns.
	var (
		g         errgroup.Group
		batchBody []byte
	)
	if len(us) > 0 {
		url := u.batch.BatchQuoteURL(fullSymbols(us))
		g.Go(func() error {
			body, _, err := u.http.Get(ctx, url)
			batchBody = body
			return err
		})
	}

	for _, s := range nonUS {
		q, err := u.fetchDaily(ctx, s)
		if err != nil {
			return nil, err
		}
		quotes[s.FullSymbol()] = q
	}

	if len(us) > 0 {
		if err := g.Wait(); err != nil {
			return nil, &domain.FetchError{Symbols: us, Err: err}
		}
		usQuotes, err := u.reconcileBatch(batchBody, us)
		if err != nil {
			return nil, err
		}
		for k, q := range usQuotes {
			quotes[k] = q
		}
	}

	return quotes, nil
}

func (u *QuoteUsecase) fetchDaily(ctx context.Context, s domain.Symbol) (domain.Quote, error) {
	body, transfer, err := u.http.Get(ctx, u.daily.DailyQuoteURL(s.FullSymbol()))
	if err != nil {
		return nil, &domain.FetchError{Symbols: []domain.Symbol{s}, Err: err}
	}
	if u.limiter != nil {
		u.limiter.WaitAfter(transfer)
	}

	q, err := u.daily.QuoteFromResponse(body, u.now())
	if err != nil {
		slog.Warn("unexpected daily quote response", "symbol", s.FullSymbol(), "error", err)
		return nil, &domain.FetchError{Symbols: []domain.Symbol{s}, Err: err}
	}
	return q, nil
}

// reconcileBatch parses the batch body and checks every requested symbol was answered.
func (u *QuoteUsecase) reconcileBatch(body []byte, requested []domain.Symbol) (map[string]domain.Quote, error) {
	quotes, err := u.batch.QuotesFromBatchResponse(body)
	if err != nil {
		slog.Warn("unexpected batch quote response", "symbols", len(requested), "error", err)
		return nil, &domain.FetchError{Symbols: requested, Err: err}
	}

	var missing []domain.Symbol
	for _, s := range requested {
		if _, ok := quotes[s.FullSymbol()]; !ok {
			missing = append(missing, s)
		}
	}
	if len(missing) > 0 || len(quotes) != len(requested) {
		return nil, &domain.InvalidStockSymbolsError{Symbols: missing}
	}
	return quotes, nil
}

// partition drops duplicate full symbols, keeping the first occurrence, and
// splits the rest by market.
func partition(symbols []domain.Symbol) (us, nonUS []domain.Symbol) {
	seen := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		fs := s.FullSymbol()
		if _, dup := seen[fs]; dup {
			continue
		}
		seen[fs] = struct{}{}
		if s.Exchange().IsUS {
			us = append(us, s)
		} else {
			nonUS = append(nonUS, s)
		}
	}
	return us, nonUS
}

func fullSymbols(symbols []domain.Symbol) []string {
	out := make([]string, len(symbols))
	for i, s := range symbols {
		out[i] = s.FullSymbol()
	}
	return out
}
