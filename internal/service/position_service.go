package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/galaxytrack/Stock-Tracker-Backend/internal/apperrors"
	"github.com/galaxytrack/Stock-Tracker-Backend/internal/model"
	"github.com/galaxytrack/Stock-Tracker-Backend/internal/quote"
	"github.com/galaxytrack/Stock-Tracker-Backend/internal/repository"
	"github.com/galaxytrack/Stock-Tracker-Backend/internal/ticker"
)

// metadataTimeout bounds the best-effort profile lookup during position
// creation. Enrichment is cosmetic and must not hold up the submit.
const metadataTimeout = 3 * time.Second

// PositionService handles the position lifecycle: validated upserts with
// ticker normalization and best-effort metadata enrichment, manual price
// updates, deletes, and the clear-all operation.
type PositionService struct {
	positionRepo *repository.PositionRepository
	quotes       quote.Source
	log          zerolog.Logger
}

// NewPositionService creates a new PositionService. quotes is used only
// for display-name and logo enrichment and may be nil to disable it.
func NewPositionService(positionRepo *repository.PositionRepository, quotes quote.Source, log zerolog.Logger) *PositionService {
	return &PositionService{
		positionRepo: positionRepo,
		quotes:       quotes,
		log:          log.With().Str("component", "positions").Logger(),
	}
}

// List returns all stored positions in insertion order.
func (s *PositionService) List() ([]model.Position, error) {
	return s.positionRepo.List()
}

// CreateOrReplace validates and stores a position, replacing any
// existing entry with the same symbol.
//
// The raw symbol is normalized and classified before storage: digit-only
// input becomes a ".TW" symbol in TWD, recognized Taiwan suffixes stay
// TWD, everything else is USD. An explicitly supplied currency overrides
// the classification. When no display name is given, a profile lookup
// fills the name and logo; its failure leaves the fields empty and never
// fails the create.
func (s *PositionService) CreateOrReplace(ctx context.Context, p model.Position) (model.Position, error) {
	if strings.TrimSpace(p.Symbol) == "" {
		return model.Position{}, apperrors.ErrEmptySymbol
	}
	if p.Quantity < 1 {
		return model.Position{}, apperrors.ErrInvalidQuantity
	}
	if p.CostBasis < 0 || p.ManualPrice < 0 {
		return model.Position{}, apperrors.ErrNegativePrice
	}

	symbol, classified := ticker.Normalize(p.Symbol)
	p.Symbol = symbol
	if p.Currency == "" {
		p.Currency = classified
	}
	if p.TrackingMode == "" {
		p.TrackingMode = model.TrackingAuto
	}

	switch p.Currency {
	case model.CurrencyUSD, model.CurrencyTWD:
	default:
		return model.Position{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidCurrency, p.Currency)
	}
	switch p.TrackingMode {
	case model.TrackingAuto, model.TrackingManual:
	default:
		return model.Position{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidTrackingMode, p.TrackingMode)
	}

	if p.DisplayName == "" {
		s.enrich(ctx, &p)
	}

	return s.positionRepo.Upsert(p)
}

// UpdateManualPrice sets the manual price of an existing position
// without touching its other fields or its insertion order.
func (s *PositionService) UpdateManualPrice(symbol string, price float64) error {
	if strings.TrimSpace(symbol) == "" {
		return apperrors.ErrEmptySymbol
	}
	if price < 0 {
		return apperrors.ErrNegativePrice
	}

	affected, err := s.positionRepo.UpdateManualPrice(symbol, price)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrPositionNotFound, symbol)
	}
	return nil
}

// Delete removes a position by symbol. Deleting an absent symbol is a
// no-op.
func (s *PositionService) Delete(symbol string) error {
	if strings.TrimSpace(symbol) == "" {
		return apperrors.ErrEmptySymbol
	}
	return s.positionRepo.Delete(symbol)
}

// Clear removes every stored position.
func (s *PositionService) Clear() error {
	return s.positionRepo.DeleteAll()
}

// enrich fills the display name and logo URL from the quote feed's
// company profile. Failures are logged and otherwise ignored.
func (s *PositionService) enrich(ctx context.Context, p *model.Position) {
	if s.quotes == nil {
		return
	}

	fetchCtx, cancel := context.WithTimeout(ctx, metadataTimeout)
	defer cancel()

	profile, err := s.quotes.Profile(fetchCtx, p.Symbol)
	if err != nil {
		s.log.Debug().Err(err).Str("symbol", p.Symbol).Msg("Profile lookup failed, skipping enrichment")
		return
	}

	p.DisplayName = profile.LongName
	if domain := websiteDomain(profile.Website); domain != "" {
		p.LogoURL = "https://logo.clearbit.com/" + domain
	}
}

// websiteDomain extracts the bare host from a website URL, e.g.
// "https://www.nvidia.com/en-us/" -> "www.nvidia.com".
func websiteDomain(website string) string {
	if website == "" {
		return ""
	}
	if idx := strings.Index(website, "//"); idx >= 0 {
		website = website[idx+2:]
	}
	if idx := strings.Index(website, "/"); idx >= 0 {
		website = website[:idx]
	}
	return website
}
