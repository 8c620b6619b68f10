package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/galaxytrack/Stock-Tracker-Backend/internal/model"
	"github.com/galaxytrack/Stock-Tracker-Backend/internal/quote"
	"github.com/galaxytrack/Stock-Tracker-Backend/internal/repository"
)

// RateProvider supplies the USD→TWD conversion rate for a valuation
// cycle. Implementations never fail; on feed problems they return a
// last-known-good or fallback value.
type RateProvider interface {
	Rate(ctx context.Context) float64
}

// ValuationService runs refresh cycles: it loads the stored positions,
// fetches the exchange rate and per-symbol quotes, and computes a
// valuation line per position plus the aggregate summary.
//
// The engine always degrades, never aborts: a failed quote fetch drops
// that one position back to its manual price (which may be zero when the
// user never supplied one), a zero cost basis yields a return of exactly
// 0 instead of NaN, and the rate provider absorbs its own failures. A
// refresh cycle only errors on store I/O.
type ValuationService struct {
	positionRepo *repository.PositionRepository
	quotes       quote.Source
	rates        RateProvider
	fetchTimeout time.Duration
	fetchLimit   int
	log          zerolog.Logger
}

// NewValuationService creates a ValuationService.
//
// fetchTimeout bounds each per-symbol quote request so one stalled call
// cannot block the whole refresh; fetchLimit caps how many quote fetches
// run concurrently.
func NewValuationService(
	positionRepo *repository.PositionRepository,
	quotes quote.Source,
	rates RateProvider,
	fetchTimeout time.Duration,
	fetchLimit int,
	log zerolog.Logger,
) *ValuationService {
	if fetchLimit < 1 {
		fetchLimit = 1
	}
	return &ValuationService{
		positionRepo: positionRepo,
		quotes:       quotes,
		rates:        rates,
		fetchTimeout: fetchTimeout,
		fetchLimit:   fetchLimit,
		log:          log.With().Str("component", "valuation").Logger(),
	}
}

// Valuate executes one full refresh cycle and returns the report.
// Position order in the report matches store order. The only error path
// is reading the position store.
func (s *ValuationService) Valuate(ctx context.Context) (model.ValuationReport, error) {
	positions, err := s.positionRepo.List()
	if err != nil {
		return model.ValuationReport{}, err
	}

	rate := s.rates.Rate(ctx)

	lines := make([]model.PositionValuation, len(positions))

	// Quote fetches are independent, so fan out with bounded
	// concurrency. Each goroutine writes only its own slice index and
	// never returns an error: per-symbol failures degrade in place.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fetchLimit)
	for i, p := range positions {
		g.Go(func() error {
			lines[i] = s.valuatePosition(gctx, p, rate)
			return nil
		})
	}
	g.Wait() //nolint:errcheck // workers never return errors

	summary := summarize(lines)

	return model.ValuationReport{
		Lines:   lines,
		Summary: summary,
		USDRate: rate,
	}, nil
}

// valuatePosition computes one valuation line, normalized to TWD.
func (s *ValuationService) valuatePosition(ctx context.Context, p model.Position, rate float64) model.PositionValuation {
	price, source, degraded := s.effectivePrice(ctx, p)

	fxMultiplier := 1.0
	if p.Currency == model.CurrencyUSD {
		fxMultiplier = rate
	}

	quantity := float64(p.Quantity)
	marketValue := price * quantity * fxMultiplier
	costValue := p.CostBasis * quantity * fxMultiplier
	profit := marketValue - costValue

	returnPct := 0.0
	if costValue != 0 {
		returnPct = profit / costValue * 100
	}

	return model.PositionValuation{
		Position:     p,
		CurrentPrice: price,
		PriceSource:  source,
		Degraded:     degraded,
		MarketValue:  marketValue,
		CostValue:    costValue,
		Profit:       profit,
		ReturnPct:    returnPct,
	}
}

// effectivePrice resolves the current price for a position. AUTO
// positions use the latest fetched close and fall back to their manual
// price when the fetch fails or returns nothing; MANUAL positions use
// the manual price directly.
func (s *ValuationService) effectivePrice(ctx context.Context, p model.Position) (float64, model.PriceSource, bool) {
	if p.TrackingMode == model.TrackingManual {
		return p.ManualPrice, model.PriceSourceManual, false
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	chart, err := s.quotes.History(fetchCtx, p.Symbol)
	if err != nil || len(chart.Bars) == 0 {
		s.log.Warn().
			Err(err).
			Str("symbol", p.Symbol).
			Float64("manualPrice", p.ManualPrice).
			Msg("Quote fetch failed, degrading to manual price")
		return p.ManualPrice, model.PriceSourceManual, true
	}

	return chart.LatestClose(), model.PriceSourceLive, false
}

// summarize folds the per-line values into the aggregate. Both sums are
// commutative, so the result does not depend on valuation order.
func summarize(lines []model.PositionValuation) model.PortfolioSummary {
	var summary model.PortfolioSummary
	for _, line := range lines {
		summary.TotalMarketValue += line.MarketValue
		summary.TotalCostValue += line.CostValue
	}
	summary.TotalProfit = summary.TotalMarketValue - summary.TotalCostValue
	if summary.TotalCostValue != 0 {
		summary.ReturnPct = summary.TotalProfit / summary.TotalCostValue * 100
	}
	return summary
}
