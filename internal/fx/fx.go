// Package fx supplies the USD→TWD exchange rate used to normalize USD
// positions into the reporting currency.
//
// The provider never fails: a fetch error yields the last-known-good
// rate, or a fixed fallback when nothing was ever fetched. The valuation
// pipeline is never blocked on the rate feed.
package fx

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/galaxytrack/Stock-Tracker-Backend/internal/yahoo"
)

// RateSymbol is the Yahoo ticker for the USD→TWD conversion rate.
const RateSymbol = "TWD=X"

// DefaultFallbackRate is used when no rate has ever been fetched
// successfully.
const DefaultFallbackRate = 32.5

// RateSource fetches the current USD→TWD rate from an external feed.
type RateSource interface {
	FetchRate(ctx context.Context) (float64, error)
}

// YahooRateSource reads the rate as the latest close of the TWD=X
// one-day history.
type YahooRateSource struct {
	client *yahoo.FinanceClient
}

// NewYahooRateSource creates a RateSource backed by the Yahoo client.
func NewYahooRateSource(client *yahoo.FinanceClient) *YahooRateSource {
	return &YahooRateSource{client: client}
}

// FetchRate fetches the latest USD→TWD close.
func (s *YahooRateSource) FetchRate(ctx context.Context) (float64, error) {
	chart, err := s.client.QueryHistory(ctx, RateSymbol, "1d")
	if err != nil {
		return 0, err
	}
	if len(chart.Bars) == 0 {
		return 0, fmt.Errorf("empty rate history for %s", RateSymbol)
	}
	return chart.LatestClose(), nil
}

// Provider caches the exchange rate with a TTL and absorbs all fetch
// failures.
type Provider struct {
	source       RateSource
	ttl          time.Duration
	fetchTimeout time.Duration
	fallback     float64
	now          func() time.Time
	log          zerolog.Logger

	mu        sync.Mutex
	rate      float64
	fetchedAt time.Time
	haveRate  bool
}

// NewProvider creates a rate provider with the given source, cache TTL,
// per-fetch timeout, and fallback rate.
func NewProvider(source RateSource, ttl, fetchTimeout time.Duration, fallback float64, log zerolog.Logger) *Provider {
	return &Provider{
		source:       source,
		ttl:          ttl,
		fetchTimeout: fetchTimeout,
		fallback:     fallback,
		now:          time.Now,
		log:          log.With().Str("component", "fx").Logger(),
	}
}

// Rate returns the current USD→TWD rate. A fresh cached value is
// returned without a network call; otherwise a live fetch runs under the
// fetch timeout, and on failure the last-known-good value (or the
// fallback) is returned.
//
// The fetch runs outside the lock: a stalled feed times out instead of
// wedging concurrent callers behind the mutex. Concurrent cold-cache
// callers may fetch the rate twice, which is harmless.
func (p *Provider) Rate(ctx context.Context) float64 {
	p.mu.Lock()
	if p.haveRate && p.now().Sub(p.fetchedAt) < p.ttl {
		rate := p.rate
		p.mu.Unlock()
		return rate
	}
	p.mu.Unlock()

	fetchCtx, cancel := context.WithTimeout(ctx, p.fetchTimeout)
	defer cancel()

	rate, err := p.source.FetchRate(fetchCtx)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		if p.haveRate {
			p.log.Warn().Err(err).Float64("rate", p.rate).Msg("Rate fetch failed, using last known rate")
			return p.rate
		}
		p.log.Warn().Err(err).Float64("rate", p.fallback).Msg("Rate fetch failed, using fallback rate")
		return p.fallback
	}

	p.rate = rate
	p.fetchedAt = p.now()
	p.haveRate = true
	return rate
}
