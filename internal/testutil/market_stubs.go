package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/galaxytrack/Stock-Tracker-Backend/internal/yahoo"
)

// StubQuoteSource is a quote.Source backed by fixed data. Symbols absent
// from Charts return an error from History, which lets tests exercise
// the per-position degradation path. Safe for concurrent use: the
// valuation engine fans History calls out across goroutines.
type StubQuoteSource struct {
	Charts   map[string]yahoo.PriceChart
	Profiles map[string]yahoo.CompanyProfile

	mu           sync.Mutex
	historyCalls int
}

// History returns the configured chart or an error for unknown symbols.
func (s *StubQuoteSource) History(_ context.Context, symbol string) (yahoo.PriceChart, error) {
	s.mu.Lock()
	s.historyCalls++
	s.mu.Unlock()
	chart, ok := s.Charts[symbol]
	if !ok {
		return yahoo.PriceChart{}, fmt.Errorf("stub: no chart for %s", symbol)
	}
	return chart, nil
}

// Profile returns the configured profile or an error for unknown symbols.
func (s *StubQuoteSource) Profile(_ context.Context, symbol string) (yahoo.CompanyProfile, error) {
	profile, ok := s.Profiles[symbol]
	if !ok {
		return yahoo.CompanyProfile{}, fmt.Errorf("stub: no profile for %s", symbol)
	}
	return profile, nil
}

// HistoryCalls reports how many History fetches the stub served.
func (s *StubQuoteSource) HistoryCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.historyCalls
}

// ChartWithClose builds a minimal one-bar chart whose latest close is
// the given price.
func ChartWithClose(symbol string, close float64) yahoo.PriceChart {
	return yahoo.PriceChart{
		Symbol: symbol,
		Bars: []yahoo.Bar{
			{Date: time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC), PriceClose: close},
		},
	}
}

// FixedRate is a service.RateProvider that always returns the same rate.
type FixedRate float64

// Rate returns the fixed rate.
func (r FixedRate) Rate(context.Context) float64 {
	return float64(r)
}
