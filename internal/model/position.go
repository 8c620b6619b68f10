package model

// Currency identifies the denomination of a position's prices.
// Only two currencies are modeled: USD positions are converted to the
// reporting currency (TWD) at the current exchange rate, TWD positions
// are carried through at 1.0.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyTWD Currency = "TWD"
)

// TrackingMode determines where a position's current price comes from.
type TrackingMode string

const (
	// TrackingAuto fetches the latest close from the quote feed. When the
	// fetch fails the position degrades to its manual price for that cycle.
	TrackingAuto TrackingMode = "AUTO"

	// TrackingManual always uses the user-supplied manual price.
	TrackingManual TrackingMode = "MANUAL"
)

// Position represents a held instrument from the database.
// Symbol is the business key: the store holds at most one position per
// symbol, and re-submitting a symbol replaces the previous entry.
type Position struct {
	ID           string       `json:"id"`
	Symbol       string       `json:"symbol"`
	DisplayName  string       `json:"displayName"`
	CostBasis    float64      `json:"costBasis"`
	Quantity     int64        `json:"quantity"`
	Currency     Currency     `json:"currency"`
	TrackingMode TrackingMode `json:"trackingMode"`
	ManualPrice  float64      `json:"manualPrice"`
	LogoURL      string       `json:"logoUrl"`
}
