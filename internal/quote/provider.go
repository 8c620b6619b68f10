// Package quote defines the price-feed contract consumed by the
// valuation engine and a TTL-caching decorator around it.
//
// Failure isolation is part of the contract: an error from History for
// one symbol degrades only that symbol's valuation line, it never aborts
// the batch.
package quote

import (
	"context"
	"sync"
	"time"

	"github.com/galaxytrack/Stock-Tracker-Backend/internal/yahoo"
)

// historyRange is the Yahoo range expression for position quotes. One
// month of daily bars matches what the dashboard chart consumes while
// still making the latest close cheap to read.
const historyRange = "1mo"

// Source supplies recent price history and descriptive metadata per
// symbol. Both methods honor ctx cancellation.
type Source interface {
	// History returns recent daily bars for the symbol.
	History(ctx context.Context, symbol string) (yahoo.PriceChart, error)

	// Profile returns best-effort company metadata. Callers treat a
	// failure as cosmetic, independent of the History path.
	Profile(ctx context.Context, symbol string) (yahoo.CompanyProfile, error)
}

// YahooSource adapts the Yahoo Finance client to the Source interface.
type YahooSource struct {
	client *yahoo.FinanceClient
}

// NewYahooSource creates a Source backed by the given Yahoo client.
func NewYahooSource(client *yahoo.FinanceClient) *YahooSource {
	return &YahooSource{client: client}
}

// History fetches one month of daily bars for the symbol.
func (s *YahooSource) History(ctx context.Context, symbol string) (yahoo.PriceChart, error) {
	return s.client.QueryHistory(ctx, symbol, historyRange)
}

// Profile fetches company metadata for the symbol.
func (s *YahooSource) Profile(ctx context.Context, symbol string) (yahoo.CompanyProfile, error) {
	return s.client.QueryProfile(ctx, symbol)
}

type historyEntry struct {
	chart     yahoo.PriceChart
	fetchedAt time.Time
}

// CachedSource decorates a Source with a per-symbol TTL cache. A cache
// hit returns the stored chart with no network call; a miss or expired
// entry triggers a live fetch. Errors are not cached, so a failed symbol
// is retried on the next refresh.
type CachedSource struct {
	inner Source
	ttl   time.Duration
	now   func() time.Time

	mu      sync.Mutex
	history map[string]historyEntry
}

// NewCachedSource wraps inner with a TTL cache over History results.
// Profile calls pass through uncached: they run once per position
// creation, not once per refresh.
func NewCachedSource(inner Source, ttl time.Duration) *CachedSource {
	return &CachedSource{
		inner:   inner,
		ttl:     ttl,
		now:     time.Now,
		history: make(map[string]historyEntry),
	}
}

// History returns the cached chart when fresh, otherwise fetches and
// stores a new one.
func (s *CachedSource) History(ctx context.Context, symbol string) (yahoo.PriceChart, error) {
	s.mu.Lock()
	entry, ok := s.history[symbol]
	s.mu.Unlock()

	if ok && s.now().Sub(entry.fetchedAt) < s.ttl {
		return entry.chart, nil
	}

	chart, err := s.inner.History(ctx, symbol)
	if err != nil {
		return yahoo.PriceChart{}, err
	}

	s.mu.Lock()
	s.history[symbol] = historyEntry{chart: chart, fetchedAt: s.now()}
	s.mu.Unlock()

	return chart, nil
}

// Profile passes through to the inner source.
func (s *CachedSource) Profile(ctx context.Context, symbol string) (yahoo.CompanyProfile, error) {
	return s.inner.Profile(ctx, symbol)
}
