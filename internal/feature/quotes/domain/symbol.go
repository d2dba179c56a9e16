package domain

import (
	"fmt"
	"strings"
)

// Symbol identifies a stock on an exchange. US stocks have an empty exchange
// code, every other market uses "<ticker>.<exchange code>", e.g. "SHOP.TO".
type Symbol struct {
	prefix       string
	exchangeCode string
	exchange     Exchange
}

// ParseSymbol parses a full symbol such as "shop.to" or "AAPL".
func ParseSymbol(fullSymbol string) (Symbol, error) {
	if fullSymbol == "" {
		return Symbol{}, fmt.Errorf("%w: symbol cannot be empty", ErrInvalidArgument)
	}
	parts := strings.Split(strings.ToUpper(fullSymbol), ".")
	switch len(parts) {
	case 1:
		return newSymbol(parts[0], ExchangeUS)
	case 2:
		return newSymbol(parts[0], parts[1])
	default:
		return Symbol{}, &InvalidExchangeCodeError{ExchangeCode: strings.Join(parts[1:], "")}
	}
}

// NewSymbol builds a symbol from a ticker and an explicit exchange code.
func NewSymbol(ticker, exchangeCode string) (Symbol, error) {
	if ticker == "" {
		return Symbol{}, fmt.Errorf("%w: symbol cannot be empty", ErrInvalidArgument)
	}
	return newSymbol(strings.ToUpper(ticker), strings.ToUpper(exchangeCode))
}

// MustParseSymbols parses every full symbol and panics on the first error.
// Intended for tests and static tables.
func MustParseSymbols(fullSymbols ...string) []Symbol {
	out := make([]Symbol, 0, len(fullSymbols))
	for _, fs := range fullSymbols {
		s, err := ParseSymbol(fs)
		if err != nil {
			panic(err)
		}
		out = append(out, s)
	}
	return out
}

func newSymbol(prefix, exchangeCode string) (Symbol, error) {
	if prefix == "" {
		return Symbol{}, fmt.Errorf("%w: symbol cannot be empty", ErrInvalidArgument)
	}
	exchange, err := LookupExchange(exchangeCode)
	if err != nil {
		return Symbol{}, err
	}
	return Symbol{prefix: prefix, exchangeCode: exchangeCode, exchange: exchange}, nil
}

// Prefix returns the upper-cased ticker.
func (s Symbol) Prefix() string { return s.prefix }

// ExchangeCode returns the upper-cased exchange code, empty for US stocks.
func (s Symbol) ExchangeCode() string { return s.exchangeCode }

// Exchange returns the exchange the symbol trades on.
func (s Symbol) Exchange() Exchange { return s.exchange }

// FullSymbol returns the ticker, suffixed with "."+code for non-US exchanges.
func (s Symbol) FullSymbol() string {
	if s.exchangeCode == "" {
		return s.prefix
	}
	return s.prefix + "." + s.exchangeCode
}

func (s Symbol) String() string { return s.FullSymbol() }
