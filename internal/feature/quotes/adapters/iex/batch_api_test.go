package iex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quote_backend/internal/feature/quotes/domain"
)

const threeQuotes = `{
	"AAPL": {"quote": {
		"symbol": "AAPL", "companyName": "Apple Inc.", "primaryExchange": "Nasdaq Global Select",
		"latestPrice": 173.21, "open": 172.08, "close": 173.25, "high": 173.923, "low": 171.7,
		"latestVolume": 12601243, "latestUpdate": 1523467219040, "peRatio": 17.84
	}},
	"FB": {"quote": {
		"symbol": "FB", "latestPrice": 166.32, "open": 165.1, "close": 165.3, "high": 167.2, "low": 164.8,
		"latestVolume": 20001000, "latestUpdate": 1523467219999
	}},
	"MSFT": {"quote": {
		"symbol": "MSFT", "latestPrice": "93.2", "open": 92.1, "close": 92.88, "high": 93.5, "low": 91.9,
		"latestVolume": 18000000, "latestUpdate": 1523467210000
	}}
}`

func TestBatchAPI_BatchQuoteURL(t *testing.T) {
	t.Parallel()

	api := NewBatchAPI(Config{})
	got := api.BatchQuoteURL([]string{"MSFT", "FB", "AAPL"})

	assert.Equal(t, "https://api.iextrading.com/1.0/stock/market/batch?&types=quote&symbols=MSFT,FB,AAPL", got)
}

func TestBatchAPI_BatchQuoteURL_CustomBase(t *testing.T) {
	t.Parallel()

	api := NewBatchAPI(Config{BaseURL: "http://127.0.0.1:9999/batch"})
	got := api.BatchQuoteURL([]string{"BRK.B"})

	assert.Equal(t, "http://127.0.0.1:9999/batch?&types=quote&symbols=BRK.B", got)
}

func TestBatchAPI_QuotesFromBatchResponse(t *testing.T) {
	t.Parallel()

	quotes, err := NewBatchAPI(Config{}).QuotesFromBatchResponse([]byte(threeQuotes))
	require.NoError(t, err)
	require.Len(t, quotes, 3)

	q, ok := quotes["AAPL"]
	require.True(t, ok)
	assert.Equal(t, domain.KindUS, q.Kind())
	assert.Equal(t, "AAPL", q.Symbol())
	assert.Equal(t, 173.21, q.Price())
	assert.Equal(t, 172.08, q.Open())
	pdc, ok := q.PreviousDayClose()
	assert.True(t, ok)
	assert.Equal(t, 173.25, pdc)
	assert.Equal(t, 173.923, q.High())
	assert.Equal(t, 171.7, q.Low())
	assert.Equal(t, int64(12601243), q.Volume())
	assert.Equal(t, int64(1523467219), q.LastUpdated())

	us := q.(*domain.USQuote)
	assert.Equal(t, map[string]any{
		"companyName":     "Apple Inc.",
		"primaryExchange": "Nasdaq Global Select",
		"peRatio":         17.84,
	}, us.Extensions())

	// string encoded numbers are coerced
	assert.Equal(t, 93.2, quotes["MSFT"].Price())
	assert.Empty(t, quotes["FB"].(*domain.USQuote).Extensions())
}

func TestBatchAPI_QuotesFromBatchResponse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		wantCode domain.ResponseCode
		wantMsg  string
	}{
		{"not json", "unexpected response", domain.CodeIEXUnknownErrorResponse, "unexpected response"},
		{"empty body", "", domain.CodeIEXUnknownErrorResponse, ""},
		{"empty object", "{}", domain.CodeIEXUnknownErrorResponse, ""},
		{"array", "[1,2]", domain.CodeIEXUnknownErrorResponse, ""},
		{"provider error", `{"error": "Unknown symbol"}`, domain.CodeIEXErrorResponse, "Unknown symbol"},
		{
			"missing latestPrice",
			`{"AAPL": {"quote": {"symbol": "AAPL", "open": 1, "close": 1, "high": 1, "low": 1, "latestVolume": 1, "latestUpdate": 1}}}`,
			domain.CodeIEXMissingFields,
			"AAPL",
		},
		{"missing quote group", `{"AAPL": {"news": []}}`, domain.CodeIEXMissingFields, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			quotes, err := NewBatchAPI(Config{}).QuotesFromBatchResponse([]byte(tt.body))

			assert.Nil(t, quotes)
			var apiErr *domain.UnexpectedAPIResponseError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantCode, apiErr.Code())
			assert.Contains(t, apiErr.Error(), tt.wantMsg)
		})
	}
}
