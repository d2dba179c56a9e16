package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"quote_backend/internal/feature/quotes/domain"
	"quote_backend/internal/feature/quotes/transport/http/dto"
)

// ExchangeHandler は取引所の一覧と取引時間の状態を返します。
type ExchangeHandler struct {
	now func() time.Time
}

func NewExchangeHandler() *ExchangeHandler {
	return &ExchangeHandler{now: time.Now}
}

// List は登録済みの取引所をコード順に返します。
// GET /exchanges
func (h *ExchangeHandler) List(c *gin.Context) {
	exchanges := domain.Exchanges()
	out := make([]dto.ExchangeResponse, 0, len(exchanges))
	for _, e := range exchanges {
		out = append(out, dto.NewExchangeResponse(e))
	}
	c.JSON(http.StatusOK, out)
}

// Status は取引所が開いているか、次の開場までの秒数、直近の終了時刻を返します。
// GET /exchanges/:code/status （米国市場は code=US）
func (h *ExchangeHandler) Status(c *gin.Context) {
	code := c.Param("code")
	if strings.EqualFold(code, dto.USCode) {
		code = domain.ExchangeUS
	}
	e, err := domain.LookupExchange(code)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewExchangeStatusResponse(e, h.now()))
}
