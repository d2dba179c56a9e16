// Package alphavantage adapts the AlphaVantage daily time series endpoint,
// used for every exchange outside the US.
package alphavantage

import "time"

const (
	// DefaultBaseURL is the public AlphaVantage query endpoint.
	DefaultBaseURL = "https://www.alphavantage.co/query"
	// DefaultMinInterval keeps the free tier's request rate.
	DefaultMinInterval = time.Second
)

// Config holds configuration for the AlphaVantage adapter.
type Config struct {
	APIKey      string        // required; no key means no international quotes
	BaseURL     string        // query endpoint, without query string
	MinInterval time.Duration // minimum spacing between consecutive calls
}
