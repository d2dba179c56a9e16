// Package handler はquotesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"quote_backend/internal/feature/quotes/domain"
	"quote_backend/internal/feature/quotes/transport/http/dto"
	"quote_backend/internal/feature/quotes/usecase"
)

// QuoteFetcher は株価取得のユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type QuoteFetcher interface {
	FetchQuotes(ctx context.Context, symbols []domain.Symbol) (map[string]domain.Quote, error)
}

// CacheInvalidator はキャッシュ削除のインターフェースです。
type CacheInvalidator interface {
	Invalidate(ctx context.Context, fullSymbols ...string) (int, error)
}

// QuoteHandler は株価に関するHTTPリクエストを処理します。
type QuoteHandler struct {
	uc    QuoteFetcher
	cache CacheInvalidator
}

// NewQuoteHandler は QuoteHandler を生成します。cache が nil の場合、
// キャッシュ削除APIは 501 を返します。
func NewQuoteHandler(uc QuoteFetcher, cache CacheInvalidator) *QuoteHandler {
	return &QuoteHandler{uc: uc, cache: cache}
}

// GetQuotes はカンマ区切りの銘柄の株価をJSONで返します。
//
// エンドポイント例:
// GET /quotes?symbols=AAPL,SHOP.TO
func (h *QuoteHandler) GetQuotes(c *gin.Context) {
	raw := splitSymbols(c.Query("symbols"))
	if len(raw) == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "symbols query parameter is required"})
		return
	}

	symbols := make([]domain.Symbol, 0, len(raw))
	for _, s := range raw {
		sym, err := domain.ParseSymbol(s)
		if err != nil {
			writeError(c, err)
			return
		}
		symbols = append(symbols, sym)
	}

	quotes, err := h.uc.FetchQuotes(c.Request.Context(), symbols)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuotesResponse(quotes))
}

// InvalidateCache はキャッシュを削除します。symbols 未指定の場合は全件を削除します。
//
// エンドポイント例:
// DELETE /quotes/cache?symbols=AAPL
func (h *QuoteHandler) InvalidateCache(c *gin.Context) {
	if h.cache == nil {
		c.JSON(http.StatusNotImplemented, dto.ErrorResponse{Error: "caching is disabled"})
		return
	}

	raw := splitSymbols(c.Query("symbols"))
	fullSymbols := make([]string, 0, len(raw))
	for _, s := range raw {
		sym, err := domain.ParseSymbol(s)
		if err != nil {
			writeError(c, err)
			return
		}
		fullSymbols = append(fullSymbols, sym.FullSymbol())
	}

	n, err := h.cache.Invalidate(c.Request.Context(), fullSymbols...)
	if errors.Is(err, usecase.ErrInvalidationUnsupported) {
		c.JSON(http.StatusNotImplemented, dto.ErrorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.InvalidateResponse{Deleted: n})
}

func splitSymbols(q string) []string {
	var out []string
	for _, s := range strings.Split(q, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// writeError はエラーの種類に応じたステータスコードでレスポンスを返します。
func writeError(c *gin.Context, err error) {
	resp := dto.ErrorResponse{Error: err.Error()}
	var coded interface{ Code() domain.ResponseCode }
	if errors.As(err, &coded) {
		resp.Code = int(coded.Code())
	}

	var (
		invalidCode *domain.InvalidExchangeCodeError
		invalid     *domain.InvalidStockSymbolsError
		unsupported *domain.UnsupportedSymbolsError
		fetch       *domain.FetchError
	)
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidArgument), errors.As(err, &invalidCode):
		status = http.StatusBadRequest
	case errors.As(err, &unsupported):
		status = http.StatusBadRequest
		resp.Symbols = fullSymbols(unsupported.Symbols)
	case errors.As(err, &invalid):
		status = http.StatusNotFound
		resp.Symbols = fullSymbols(invalid.Symbols)
	case errors.As(err, &fetch):
		status = http.StatusBadGateway
		resp.Symbols = fullSymbols(fetch.Symbols)
	}
	c.JSON(status, resp)
}

func fullSymbols(symbols []domain.Symbol) []string {
	out := make([]string, len(symbols))
	for i, s := range symbols {
		out[i] = s.FullSymbol()
	}
	return out
}
