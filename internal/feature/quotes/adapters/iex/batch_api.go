package iex

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"quote_backend/internal/feature/quotes/domain"
	"quote_backend/internal/feature/quotes/usecase"
)

const (
	quoteKey = "quote"
	errorKey = "error"
)

// knownFields are mapped onto QuoteData; everything else in a quote object is
// kept as an extension.
var knownFields = []string{"symbol", "latestPrice", "open", "close", "high", "low", "latestVolume", "latestUpdate"}

// BatchAPI builds IEX batch URLs and parses their responses.
type BatchAPI struct {
	cfg Config
}

var _ usecase.BatchQuoteAPI = (*BatchAPI)(nil)

// NewBatchAPI creates a BatchAPI. An empty BaseURL falls back to DefaultBaseURL.
func NewBatchAPI(cfg Config) *BatchAPI {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &BatchAPI{cfg: cfg}
}

// BatchQuoteURL returns the URL requesting quotes for every symbol in one call.
func (a *BatchAPI) BatchQuoteURL(fullSymbols []string) string {
	escaped := make([]string, len(fullSymbols))
	for i, s := range fullSymbols {
		escaped[i] = url.QueryEscape(s)
	}
	return fmt.Sprintf("%s?&types=quote&symbols=%s", a.cfg.BaseURL, strings.Join(escaped, ","))
}

// QuotesFromBatchResponse parses a batch response into quotes keyed by the
// symbols IEX answered for. Symbols IEX does not know are simply absent.
func (a *BatchAPI) QuotesFromBatchResponse(body []byte) (map[string]domain.Quote, error) {
	if !gjson.ValidBytes(body) {
		return nil, unknownResponse(body)
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, unknownResponse(body)
	}
	if e := root.Get(errorKey); e.Exists() {
		return nil, &domain.UnexpectedAPIResponseError{
			ResponseCode: domain.CodeIEXErrorResponse,
			Message:      "IEX API responded with an error: " + e.String(),
		}
	}

	quotes := make(map[string]domain.Quote)
	var parseErr error
	root.ForEach(func(key, group gjson.Result) bool {
		q := group.Get(quoteKey)
		if !q.IsObject() || !hasFields(q) {
			parseErr = &domain.UnexpectedAPIResponseError{
				ResponseCode: domain.CodeIEXMissingFields,
				Message:      fmt.Sprintf("IEX response for %s is missing expected fields; the API may have changed", key.String()),
			}
			return false
		}
		quotes[key.String()] = toQuote(q)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	if len(quotes) == 0 {
		return nil, unknownResponse(body)
	}
	return quotes, nil
}

func hasFields(q gjson.Result) bool {
	m := q.Map()
	for _, f := range knownFields {
		if _, ok := m[f]; !ok {
			return false
		}
	}
	return true
}

func toQuote(q gjson.Result) *domain.USQuote {
	m := q.Map()
	data := domain.QuoteData{
		Symbol:           m["symbol"].String(),
		Price:            m["latestPrice"].Float(),
		Open:             m["open"].Float(),
		PreviousDayClose: domain.Float64(m["close"].Float()),
		High:             m["high"].Float(),
		Low:              m["low"].Float(),
		Volume:           m["latestVolume"].Int(),
		LastUpdated:      m["latestUpdate"].Int() / 1000,
	}

	ext := make(map[string]any, len(m))
	for k, v := range m {
		ext[k] = v.Value()
	}
	for _, f := range knownFields {
		delete(ext, f)
	}
	return domain.NewUSQuote(data, ext)
}

func unknownResponse(body []byte) error {
	return &domain.UnexpectedAPIResponseError{
		ResponseCode: domain.CodeIEXUnknownErrorResponse,
		Message:      "IEX API returned an unexpected response: " + string(body),
	}
}
