package domain

import "maps"

// QuoteKind tags the quote variants.
type QuoteKind string

const (
	KindUS            QuoteKind = "us"
	KindInternational QuoteKind = "international"
)

// QuoteData holds the normalized fields every quote carries.
type QuoteData struct {
	Symbol           string   `json:"symbol"`
	Price            float64  `json:"price"`
	Open             float64  `json:"open"`
	PreviousDayClose *float64 `json:"previous_day_close,omitempty"`
	High             float64  `json:"high"`
	Low              float64  `json:"low"`
	Volume           int64    `json:"volume"`
	LastUpdated      int64    `json:"last_updated"` // unix seconds
}

// Quote is a normalized stock quote. Implementations are *USQuote and
// *InternationalQuote.
type Quote interface {
	Kind() QuoteKind
	Data() QuoteData

	Symbol() string
	Price() float64
	Open() float64
	// PreviousDayClose reports false when the provider had no prior session.
	PreviousDayClose() (float64, bool)
	High() float64
	Low() float64
	Volume() int64
	LastUpdated() int64
}

type baseQuote struct {
	data QuoteData
}

func (q baseQuote) Data() QuoteData { return q.data }
func (q baseQuote) Symbol() string { return q.data.Symbol }
func (q baseQuote) Price() float64 { return q.data.Price }
func (q baseQuote) Open() float64 { return q.data.Open }
func (q baseQuote) High() float64 { return q.data.High }
func (q baseQuote) Low() float64 { return q.data.Low }
func (q baseQuote) Volume() int64 { return q.data.Volume }
func (q baseQuote) LastUpdated() int64 { return q.data.LastUpdated }

func (q baseQuote) PreviousDayClose() (float64, bool) {
	if q.data.PreviousDayClose == nil {
		return 0, false
	}
	return *q.data.PreviousDayClose, true
}

// USQuote comes from the batch provider. Fields the provider sent beyond the
// normalized set are kept as extensions.
type USQuote struct {
	baseQuote
	extensions map[string]any
}

// NewUSQuote creates a USQuote. extensions is copied.
func NewUSQuote(data QuoteData, extensions map[string]any) *USQuote {
	return &USQuote{baseQuote: baseQuote{data: data}, extensions: maps.Clone(extensions)}
}

func (q *USQuote) Kind() QuoteKind { return KindUS }

// Extensions returns a copy of the provider fields outside the normalized set.
func (q *USQuote) Extensions() map[string]any {
	return maps.Clone(q.extensions)
}

// Extension returns a single provider field.
func (q *USQuote) Extension(key string) (any, bool) {
	v, ok := q.extensions[key]
	return v, ok
}

// InternationalQuote comes from the per-symbol provider. LastUpdated is the
// fetch time because the provider does not report one.
type InternationalQuote struct {
	baseQuote
}

// NewInternationalQuote creates an InternationalQuote.
func NewInternationalQuote(data QuoteData) *InternationalQuote {
	return &InternationalQuote{baseQuote: baseQuote{data: data}}
}

func (q *InternationalQuote) Kind() QuoteKind { return KindInternational }

// Float64 returns a pointer to v, for optional quote fields.
func Float64(v float64) *float64 { return &v }
