package alphavantage

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"quote_backend/internal/feature/quotes/domain"
	"quote_backend/internal/feature/quotes/usecase"
)

const (
	timeSeriesKey = "Time Series (Daily)"
	metaDataKey   = "Meta Data"
	symbolKey     = "2. Symbol"
	errorKey      = "Error Message"
	infoKey       = "Information"

	openKey   = "1. open"
	highKey   = "2. high"
	lowKey    = "3. low"
	closeKey  = "4. close"
	volumeKey = "5. volume"
)

// DailyAPI builds AlphaVantage TIME_SERIES_DAILY URLs and parses the responses.
type DailyAPI struct {
	cfg Config
}

var _ usecase.DailyQuoteAPI = (*DailyAPI)(nil)

// NewDailyAPI creates a DailyAPI. An empty BaseURL falls back to DefaultBaseURL.
func NewDailyAPI(cfg Config) *DailyAPI {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &DailyAPI{cfg: cfg}
}

// DailyQuoteURL returns the compact daily series URL for one symbol.
func (a *DailyAPI) DailyQuoteURL(fullSymbol string) string {
	return fmt.Sprintf("%s?function=TIME_SERIES_DAILY&symbol=%s&apikey=%s&outputsize=compact&datatype=json",
		a.cfg.BaseURL, url.QueryEscape(fullSymbol), url.QueryEscape(a.cfg.APIKey))
}

// QuoteFromResponse parses the most recent day of a daily series. The day
// before it, when present, supplies the previous close.
func (a *DailyAPI) QuoteFromResponse(body []byte, now time.Time) (domain.Quote, error) {
	if !gjson.ValidBytes(body) {
		return nil, unknownResponse(body)
	}
	root := gjson.ParseBytes(body)

	if series := root.Get(timeSeriesKey); series.Exists() {
		if q, ok := parseSeries(root, series, now); ok {
			return q, nil
		}
		return nil, unknownResponse(body)
	}

	for _, key := range []string{errorKey, infoKey} {
		if msg := root.Get(key); msg.Exists() {
			return nil, &domain.UnexpectedAPIResponseError{
				ResponseCode: domain.CodeAVErrorResponse,
				Message: "AlphaVantage returned an error; the symbol may be invalid or the API may have changed" +
					"\n\tError Message from AlphaVantage: " + msg.String(),
			}
		}
	}
	return nil, unknownResponse(body)
}

func parseSeries(root, series gjson.Result, now time.Time) (domain.Quote, bool) {
	// Dates are read in document order; the newest comes first.
	var days []map[string]gjson.Result
	series.ForEach(func(_, day gjson.Result) bool {
		days = append(days, day.Map())
		return len(days) < 2
	})
	if len(days) == 0 {
		return nil, false
	}

	latest := days[0]
	for _, k := range []string{openKey, highKey, lowKey, closeKey, volumeKey} {
		if _, ok := latest[k]; !ok {
			return nil, false
		}
	}
	symbol, ok := root.Get(metaDataKey).Map()[symbolKey]
	if !ok {
		return nil, false
	}

	data := domain.QuoteData{
		Symbol:      strings.ToUpper(symbol.String()),
		Price:       latest[closeKey].Float(),
		Open:        latest[openKey].Float(),
		High:        latest[highKey].Float(),
		Low:         latest[lowKey].Float(),
		Volume:      latest[volumeKey].Int(),
		LastUpdated: now.Unix(),
	}
	if len(days) > 1 {
		data.PreviousDayClose = domain.Float64(days[1][closeKey].Float())
	}
	return domain.NewInternationalQuote(data), true
}

func unknownResponse(body []byte) error {
	return &domain.UnexpectedAPIResponseError{
		ResponseCode: domain.CodeAVUnknownErrorResponse,
		Message:      "unexpected JSON response from AlphaVantage; the API may have changed\n\tResponse: " + string(body),
	}
}
