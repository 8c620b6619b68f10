package testutil

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"

	"github.com/galaxytrack/Stock-Tracker-Backend/internal/model"
	"github.com/galaxytrack/Stock-Tracker-Backend/internal/repository"
)

// PositionBuilder provides a fluent interface for creating test positions.
//
// Example usage:
//
//	// Simple creation with defaults
//	position := testutil.NewPosition().Build(t, db)
//
//	// Customized position
//	position := testutil.NewPosition().
//	    WithSymbol("2330.TW").
//	    WithCurrency(model.CurrencyTWD).
//	    Manual(500).
//	    Build(t, db)
type PositionBuilder struct {
	position model.Position
}

// NewPosition creates a PositionBuilder with sensible defaults: a USD
// AUTO-tracked position of 10 units at a cost basis of 100.
func NewPosition() *PositionBuilder {
	return &PositionBuilder{
		position: model.Position{
			ID:           uuid.New().String(),
			Symbol:       "NVDA",
			DisplayName:  "Test Position",
			CostBasis:    100,
			Quantity:     10,
			Currency:     model.CurrencyUSD,
			TrackingMode: model.TrackingAuto,
		},
	}
}

// WithSymbol sets a custom symbol.
func (b *PositionBuilder) WithSymbol(symbol string) *PositionBuilder {
	b.position.Symbol = symbol
	return b
}

// WithDisplayName sets a custom display name.
func (b *PositionBuilder) WithDisplayName(name string) *PositionBuilder {
	b.position.DisplayName = name
	return b
}

// WithCostBasis sets a custom cost basis.
func (b *PositionBuilder) WithCostBasis(costBasis float64) *PositionBuilder {
	b.position.CostBasis = costBasis
	return b
}

// WithQuantity sets a custom quantity.
func (b *PositionBuilder) WithQuantity(quantity int64) *PositionBuilder {
	b.position.Quantity = quantity
	return b
}

// WithCurrency sets a custom currency.
func (b *PositionBuilder) WithCurrency(currency model.Currency) *PositionBuilder {
	b.position.Currency = currency
	return b
}

// WithManualPrice sets the manual fallback price without changing the
// tracking mode.
func (b *PositionBuilder) WithManualPrice(price float64) *PositionBuilder {
	b.position.ManualPrice = price
	return b
}

// Manual switches the position to MANUAL tracking at the given price.
func (b *PositionBuilder) Manual(price float64) *PositionBuilder {
	b.position.TrackingMode = model.TrackingManual
	b.position.ManualPrice = price
	return b
}

// Value returns the built position without persisting it.
func (b *PositionBuilder) Value() model.Position {
	return b.position
}

// Build persists the position and returns it.
func (b *PositionBuilder) Build(t *testing.T, db *sql.DB) model.Position {
	t.Helper()

	repo := repository.NewPositionRepository(db)
	position, err := repo.Upsert(b.position)
	if err != nil {
		t.Fatalf("Failed to create test position: %v", err)
	}
	return position
}
