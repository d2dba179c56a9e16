package dto

import (
	"time"

	"quote_backend/internal/feature/quotes/domain"
)

// USCode is how the default market is addressed over HTTP, since its
// symbol exchange code is empty.
const USCode = "US"

// ExchangeResponse は取引所情報のレスポンスDTOです。
type ExchangeResponse struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
	Opens    string `json:"opens"`
	Closes   string `json:"closes"`
	IsUS     bool   `json:"is_us"`
}

// ExchangeStatusResponse は取引所の現在の状態です。
type ExchangeStatusResponse struct {
	Code                 string `json:"code"`
	Open                 bool   `json:"open"`
	SecondsUntilNextOpen int64  `json:"seconds_until_next_open"`
	NextOpen             string `json:"next_open"`
	LastClose            string `json:"last_close"`
	AsOf                 string `json:"as_of"`
}

func displayCode(e domain.Exchange) string {
	if e.IsUS {
		return USCode
	}
	return e.Code
}

// NewExchangeResponse はドメインのExchangeをDTOに変換します。
func NewExchangeResponse(e domain.Exchange) ExchangeResponse {
	return ExchangeResponse{
		Code:     displayCode(e),
		Name:     e.Name,
		Timezone: e.Timezone,
		Opens:    e.Opens.String(),
		Closes:   e.Closes.String(),
		IsUS:     e.IsUS,
	}
}

// NewExchangeStatusResponse は now 時点の取引所の状態を返します。
// 時刻は取引所のローカル時刻で出力します。
func NewExchangeStatusResponse(e domain.Exchange, now time.Time) ExchangeStatusResponse {
	loc := e.Location()
	return ExchangeStatusResponse{
		Code:                 displayCode(e),
		Open:                 e.IsOpen(now),
		SecondsUntilNextOpen: e.SecondsUntilNextOpen(now),
		NextOpen:             e.NextOpen(now).In(loc).Format(time.RFC3339),
		LastClose:            e.LastClose(now).In(loc).Format(time.RFC3339),
		AsOf:                 now.In(loc).Format(time.RFC3339),
	}
}
