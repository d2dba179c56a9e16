// Package domain defines the quote feature's domain model: exchanges and their
// trading calendar, stock symbols, normalized quotes and the error taxonomy.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ResponseCode classifies failures. Provider codes identify which API
// returned an unexpected payload.
type ResponseCode int

const (
	CodeUnknown ResponseCode = 0

	// AlphaVantage (per-symbol provider)
	CodeAVErrorResponse        ResponseCode = 100
	CodeAVUnknownErrorResponse ResponseCode = 101

	// IEX (batch provider)
	CodeIEXErrorResponse        ResponseCode = 110
	CodeIEXUnknownErrorResponse ResponseCode = 111
	CodeIEXMissingFields        ResponseCode = 112

	CodeInvalidStockSymbols ResponseCode = 200
	CodeInvalidExchangeCode ResponseCode = 201
	CodeUnsupportedSymbol   ResponseCode = 202
)

// ErrInvalidArgument is returned for malformed caller input.
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidExchangeCodeError is returned when an exchange code is not in the registry.
type InvalidExchangeCodeError struct {
	ExchangeCode string
}

func (e *InvalidExchangeCodeError) Error() string {
	return "invalid exchange code: " + e.ExchangeCode
}

// Code returns CodeInvalidExchangeCode.
func (e *InvalidExchangeCodeError) Code() ResponseCode { return CodeInvalidExchangeCode }

// InvalidStockSymbolsError lists requested symbols the batch provider did not return.
type InvalidStockSymbolsError struct {
	Symbols []Symbol
}

func (e *InvalidStockSymbolsError) Error() string {
	return "invalid stock symbols: " + joinFullSymbols(e.Symbols)
}

// Code returns CodeInvalidStockSymbols.
func (e *InvalidStockSymbolsError) Code() ResponseCode { return CodeInvalidStockSymbols }

// UnsupportedSymbolsError is returned when international symbols are requested
// but no per-symbol provider is configured.
type UnsupportedSymbolsError struct {
	Symbols []Symbol
}

func (e *UnsupportedSymbolsError) Error() string {
	return "the following non-US quotes require the AlphaVantage API: " + joinFullSymbols(e.Symbols) +
		"; configure an AlphaVantage API key to add support"
}

// Code returns CodeUnsupportedSymbol.
func (e *UnsupportedSymbolsError) Code() ResponseCode { return CodeUnsupportedSymbol }

// UnexpectedAPIResponseError is returned by the provider adapters when a
// payload does not have the expected shape or carries a provider error.
type UnexpectedAPIResponseError struct {
	ResponseCode ResponseCode
	Message      string
}

func (e *UnexpectedAPIResponseError) Error() string { return e.Message }

// Code returns the provider specific subcode.
func (e *UnexpectedAPIResponseError) Code() ResponseCode { return e.ResponseCode }

// FetchError wraps any failure that happened while fetching quotes for Symbols.
type FetchError struct {
	Symbols []Symbol
	Err     error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("error retrieving stock quote(s) for: %q", joinFullSymbols(e.Symbols))
	if e.Err != nil {
		msg += "\ncause: " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error { return e.Err }

// Code returns the code of the wrapped error, or CodeUnknown for transport failures.
func (e *FetchError) Code() ResponseCode {
	var coded interface{ Code() ResponseCode }
	if errors.As(e.Err, &coded) {
		return coded.Code()
	}
	return CodeUnknown
}

func joinFullSymbols(symbols []Symbol) string {
	parts := make([]string, 0, len(symbols))
	for _, s := range symbols {
		parts = append(parts, s.FullSymbol())
	}
	return strings.Join(parts, ", ")
}
