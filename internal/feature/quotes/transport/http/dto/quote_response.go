// Package dto はquotesフィーチャーのHTTPレスポンスDTOを提供します。
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"quote_backend/internal/feature/quotes/domain"
)

// QuoteResponse は株価1件のレスポンスDTOです。
// 価格は浮動小数点の誤差を避けるため decimal で文字列として出力します。
type QuoteResponse struct {
	Symbol           string           `json:"symbol"`
	Kind             string           `json:"kind"`
	Price            decimal.Decimal  `json:"price"`
	Open             decimal.Decimal  `json:"open"`
	High             decimal.Decimal  `json:"high"`
	Low              decimal.Decimal  `json:"low"`
	PreviousDayClose *decimal.Decimal `json:"previous_day_close,omitempty"`
	Volume           int64            `json:"volume"`
	LastUpdated      int64            `json:"last_updated"`    // Unix秒
	LastUpdatedAt    string           `json:"last_updated_at"` // RFC3339 (UTC)
	Extensions       map[string]any   `json:"extensions,omitempty"`
}

// QuotesResponse は /quotes のレスポンスです。キーはフルシンボルです。
type QuotesResponse struct {
	Quotes map[string]QuoteResponse `json:"quotes"`
}

// NewQuoteResponse はドメインのQuoteをDTOに変換します。
func NewQuoteResponse(q domain.Quote) QuoteResponse {
	d := q.Data()
	out := QuoteResponse{
		Symbol:        d.Symbol,
		Kind:          string(q.Kind()),
		Price:         decimal.NewFromFloat(d.Price),
		Open:          decimal.NewFromFloat(d.Open),
		High:          decimal.NewFromFloat(d.High),
		Low:           decimal.NewFromFloat(d.Low),
		Volume:        d.Volume,
		LastUpdated:   d.LastUpdated,
		LastUpdatedAt: time.Unix(d.LastUpdated, 0).UTC().Format(time.RFC3339),
	}
	if pdc, ok := q.PreviousDayClose(); ok {
		v := decimal.NewFromFloat(pdc)
		out.PreviousDayClose = &v
	}
	if us, ok := q.(*domain.USQuote); ok {
		if ext := us.Extensions(); len(ext) > 0 {
			out.Extensions = ext
		}
	}
	return out
}

// NewQuotesResponse はフルシンボルをキーとするQuoteのマップを変換します。
func NewQuotesResponse(quotes map[string]domain.Quote) QuotesResponse {
	out := QuotesResponse{Quotes: make(map[string]QuoteResponse, len(quotes))}
	for fs, q := range quotes {
		out.Quotes[fs] = NewQuoteResponse(q)
	}
	return out
}

// InvalidateResponse はキャッシュ削除のレスポンスです。
type InvalidateResponse struct {
	Deleted int `json:"deleted"`
}

// ErrorResponse はエラー時の共通レスポンスです。
type ErrorResponse struct {
	Error   string   `json:"error"`
	Code    int      `json:"code,omitempty"`
	Symbols []string `json:"symbols,omitempty"`
}
