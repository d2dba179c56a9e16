package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Exchange codes as used in full symbols ("<ticker>.<code>").
const (
	ExchangeUS         = ""
	ExchangeAmsterdam  = "AS"
	ExchangeAustralia  = "AX"
	ExchangeCanada     = "TO"
	ExchangeGermany    = "F"
	ExchangeHongKong   = "HK"
	ExchangeJapan      = "T"
	ExchangeLondon     = "L"
	ExchangeNewZealand = "NZ"
	ExchangeNorway     = "OL"
	ExchangeParis      = "PA"
	ExchangeShanghai   = "SS"
	ExchangeShenzhen   = "SZ"
	ExchangeStockholm  = "ST"
)

// TimeOfDay is a local wall-clock time.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%d:%02d", t.Hour, t.Minute)
}

// Exchange describes a stock exchange and its regular trading hours.
type Exchange struct {
	Code     string
	Name     string
	Timezone string
	Opens    TimeOfDay
	Closes   TimeOfDay
	IsUS     bool

	loc *time.Location
}

// Location returns the exchange's time zone.
func (e Exchange) Location() *time.Location {
	if e.loc != nil {
		return e.loc
	}
	loc, err := time.LoadLocation(e.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// hours and time zones from https://www.stockmarketclock.com/exchanges
var exchanges = func() map[string]Exchange {
	table := []Exchange{
		{Code: ExchangeUS, Name: "NYSE/NASDAQ", Timezone: "America/New_York", Opens: TimeOfDay{9, 30}, Closes: TimeOfDay{16, 0}, IsUS: true},
		{Code: ExchangeAmsterdam, Name: "Euronext Amsterdam", Timezone: "Europe/Amsterdam", Opens: TimeOfDay{9, 0}, Closes: TimeOfDay{17, 40}},
		{Code: ExchangeAustralia, Name: "Australian Securities Exchange", Timezone: "Australia/Sydney", Opens: TimeOfDay{9, 50}, Closes: TimeOfDay{16, 12}},
		{Code: ExchangeCanada, Name: "Toronto Stock Exchange", Timezone: "America/Toronto", Opens: TimeOfDay{9, 30}, Closes: TimeOfDay{16, 0}},
		{Code: ExchangeGermany, Name: "Frankfurt Stock Exchange", Timezone: "Europe/Berlin", Opens: TimeOfDay{8, 0}, Closes: TimeOfDay{20, 0}},
		{Code: ExchangeHongKong, Name: "Hong Kong Stock Exchange", Timezone: "Asia/Hong_Kong", Opens: TimeOfDay{9, 30}, Closes: TimeOfDay{16, 0}},
		{Code: ExchangeJapan, Name: "Tokyo Stock Exchange", Timezone: "Asia/Tokyo", Opens: TimeOfDay{9, 0}, Closes: TimeOfDay{15, 0}},
		{Code: ExchangeLondon, Name: "London Stock Exchange", Timezone: "Europe/London", Opens: TimeOfDay{8, 0}, Closes: TimeOfDay{16, 30}},
		{Code: ExchangeNewZealand, Name: "New Zealand Stock Exchange", Timezone: "Pacific/Auckland", Opens: TimeOfDay{10, 0}, Closes: TimeOfDay{16, 45}},
		{Code: ExchangeNorway, Name: "Oslo Stock Exchange", Timezone: "Europe/Oslo", Opens: TimeOfDay{9, 0}, Closes: TimeOfDay{16, 20}},
		{Code: ExchangeParis, Name: "Euronext Paris", Timezone: "Europe/Paris", Opens: TimeOfDay{9, 0}, Closes: TimeOfDay{17, 30}},
		{Code: ExchangeShanghai, Name: "Shanghai Stock Exchange", Timezone: "Asia/Shanghai", Opens: TimeOfDay{9, 30}, Closes: TimeOfDay{15, 0}},
		{Code: ExchangeShenzhen, Name: "Shenzhen Stock Exchange", Timezone: "Asia/Shanghai", Opens: TimeOfDay{9, 30}, Closes: TimeOfDay{15, 0}},
		{Code: ExchangeStockholm, Name: "Nasdaq Stockholm", Timezone: "Europe/Stockholm", Opens: TimeOfDay{9, 0}, Closes: TimeOfDay{17, 30}},
	}
	m := make(map[string]Exchange, len(table))
	for _, e := range table {
		loc, err := time.LoadLocation(e.Timezone)
		if err != nil {
			panic(fmt.Sprintf("exchange %q: load time zone %q: %v", e.Code, e.Timezone, err))
		}
		e.loc = loc
		m[e.Code] = e
	}
	return m
}()

// LookupExchange returns the exchange registered under code. The lookup is
// case-insensitive.
func LookupExchange(code string) (Exchange, error) {
	code = strings.ToUpper(code)
	e, ok := exchanges[code]
	if !ok {
		return Exchange{}, &InvalidExchangeCodeError{ExchangeCode: code}
	}
	return e, nil
}

// IsValidExchangeCode reports whether code is in the registry.
func IsValidExchangeCode(code string) bool {
	_, ok := exchanges[strings.ToUpper(code)]
	return ok
}

// Exchanges returns every registered exchange ordered by code.
func Exchanges() []Exchange {
	out := make([]Exchange, 0, len(exchanges))
	for _, e := range exchanges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
