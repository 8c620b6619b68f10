// Package ticker classifies raw user-entered tickers into a normalized
// symbol and a currency before storage.
//
// The classification is a heuristic, not a verified exchange lookup: a
// digit-only ticker is assumed to be a Taiwan-listed instrument (so
// "2330" becomes "2330.TW" priced in TWD), a ticker already carrying a
// Taiwan suffix stays TWD, and everything else defaults to USD. It is
// total and deterministic, and it will misclassify some real instruments
// (e.g. numeric tickers on foreign exchanges); changing the rule is a
// product decision, not a bug fix.
package ticker

import (
	"strings"

	"github.com/galaxytrack/Stock-Tracker-Backend/internal/model"
)

// homeSuffixes are the exchange suffixes recognized as Taiwan markets
// (TWSE and TPEx).
var homeSuffixes = []string{".TW", ".TWO"}

// Normalize uppercases and trims a raw ticker, appends the Taiwan
// exchange suffix to digit-only input, and returns the resulting symbol
// together with its classified currency.
func Normalize(raw string) (string, model.Currency) {
	symbol := strings.ToUpper(strings.TrimSpace(raw))

	if isDigits(symbol) {
		return symbol + ".TW", model.CurrencyTWD
	}

	for _, suffix := range homeSuffixes {
		if strings.HasSuffix(symbol, suffix) {
			return symbol, model.CurrencyTWD
		}
	}

	return symbol, model.CurrencyUSD
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
