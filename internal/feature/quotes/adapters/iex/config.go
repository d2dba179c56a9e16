// Package iex adapts the IEX batch quote endpoint, used for US symbols.
package iex

// DefaultBaseURL is the public IEX batch endpoint.
const DefaultBaseURL = "https://api.iextrading.com/1.0/stock/market/batch"

// Config holds configuration for the IEX adapter.
type Config struct {
	BaseURL string // batch endpoint, without query string
}
