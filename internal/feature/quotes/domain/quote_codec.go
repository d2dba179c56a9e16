package domain

import (
	"encoding/json"
	"fmt"
)

type quoteEnvelope struct {
	Kind QuoteKind `json:"kind"`
	QuoteData
	Extensions map[string]any `json:"extensions,omitempty"`
}

// MarshalQuote serializes a quote together with its variant tag.
func MarshalQuote(q Quote) ([]byte, error) {
	env := quoteEnvelope{Kind: q.Kind(), QuoteData: q.Data()}
	if us, ok := q.(*USQuote); ok {
		env.Extensions = us.extensions
	}
	return json.Marshal(env)
}

// UnmarshalQuote restores a quote written by MarshalQuote. Numeric extension
// values decode as float64, the same as a freshly parsed provider payload.
func UnmarshalQuote(b []byte) (Quote, error) {
	var env quoteEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("decode quote: %w", err)
	}
	switch env.Kind {
	case KindUS:
		return &USQuote{baseQuote: baseQuote{data: env.QuoteData}, extensions: env.Extensions}, nil
	case KindInternational:
		return NewInternationalQuote(env.QuoteData), nil
	default:
		return nil, fmt.Errorf("decode quote: unknown kind %q", env.Kind)
	}
}
