package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrPositionNotFound indicates that a position with the given symbol does not exist.
	ErrPositionNotFound = errors.New("position not found")

	// ErrQuoteNotFound indicates that the quote feed returned no price data for a symbol.
	ErrQuoteNotFound = errors.New("no quote data for symbol")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrEmptySymbol indicates that a required symbol parameter is empty or missing.
	ErrEmptySymbol = errors.New("symbol cannot be empty")

	// ErrInvalidQuantity indicates that a quantity is below the minimum of one unit.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")

	// ErrNegativePrice indicates that a cost basis or manual price has an invalid negative value.
	ErrNegativePrice = errors.New("price cannot be negative")

	// ErrInvalidTrackingMode indicates an unrecognized tracking mode value.
	ErrInvalidTrackingMode = errors.New("invalid tracking mode")

	// ErrInvalidCurrency indicates an unrecognized currency value.
	ErrInvalidCurrency = errors.New("invalid currency")
)

// Operation failure errors are the user-facing messages of failed
// handler operations. Store I/O failures are deliberately surfaced,
// unlike quote fetches which degrade per symbol.
var (
	ErrFailedToRetrievePositions = errors.New("failed to retrieve positions")
	ErrFailedToSavePosition      = errors.New("failed to save position")
	ErrFailedToUpdatePrice       = errors.New("failed to update manual price")
	ErrFailedToDeletePosition    = errors.New("failed to delete position")
	ErrFailedToClearPositions    = errors.New("failed to clear positions")
	ErrFailedToGetValuation      = errors.New("failed to get valuation report")
)
