package router

import (
	"time"

	"github.com/gin-gonic/gin"

	quotehandler "quote_backend/internal/feature/quotes/transport/handler"
	"quote_backend/internal/platform/http/handler"
)

// NewRouter registers every endpoint. checks feed /readyz.
func NewRouter(quotes *quotehandler.QuoteHandler, exchanges *quotehandler.ExchangeHandler,
	checks map[string]handler.Checker) *gin.Engine {
	r := gin.Default()

	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	// 依存先（キャッシュストア）の疎通確認
	r.GET("/readyz", handler.Ready(checks, 2*time.Second))

	r.GET("/quotes", quotes.GetQuotes)
	r.DELETE("/quotes/cache", quotes.InvalidateCache)

	r.GET("/exchanges", exchanges.List)
	r.GET("/exchanges/:code/status", exchanges.Status)

	return r
}
